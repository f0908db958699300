package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cqlls/cqlls/config"
	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/format"
)

// FmtCmd formats CQL files.
var FmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format CQL files",
	Long: `Format .cql files with the same pipeline the language server applies to
formatting requests. Reads stdin when no files are given. With --write,
files are rewritten in place; otherwise the formatted text prints to
stdout.`,
	RunE: runFmt,
}

var fmtWrite bool

func init() {
	FmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Rewrite files in place instead of printing to stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "failed to read stdin")
		}
		fmt.Fprint(cmd.OutOrStdout(), format.Format(string(data)))
		return nil
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		formatted := format.Format(string(data))

		if !fmtWrite {
			fmt.Fprint(cmd.OutOrStdout(), formatted)
			continue
		}
		if formatted == string(data) {
			continue
		}
		if err := os.WriteFile(path, []byte(formatted), config.DefaultFilePermissions); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		pterm.Success.Printf("formatted %s\n", path)
	}
	return nil
}
