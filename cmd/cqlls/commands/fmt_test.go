package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFmt_Stdin(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(bytes.NewBufferString("SELECT  1;"))
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runFmt(cmd, nil))
	assert.Equal(t, "SELECT 1;", out.String())
}

func TestRunFmt_PrintsWithoutWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.cql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT  1;"), 0o644))

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runFmt(cmd, []string{path}))
	assert.Equal(t, "SELECT 1;", out.String())

	// Source file stays untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT  1;", string(data))
}

func TestRunFmt_WriteInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.cql")
	require.NoError(t, os.WriteFile(path, []byte("USE \"dev\"\nSELECT 1"), 0o644))

	fmtWrite = true
	t.Cleanup(func() { fmtWrite = false })

	require.NoError(t, runFmt(&cobra.Command{}, []string{path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "USE \"dev\";\n\nSELECT 1;", string(data))
}

func TestRunFmt_MissingFile(t *testing.T) {
	err := runFmt(&cobra.Command{}, []string{filepath.Join(t.TempDir(), "absent.cql")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
