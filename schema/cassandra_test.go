package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cqlls/cqlls/config"
)

func TestSplitContactPoint(t *testing.T) {
	tests := []struct {
		name string
		url  string
		host string
		port int
	}{
		{"host and port", "127.0.0.1:9042", "127.0.0.1", 9042},
		{"bare host", "db.example.com", "db.example.com", 0},
		{"ipv6 with port", "[::1]:9042", "::1", 9042},
		{"unparseable port", "db:abc", "db", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port := splitContactPoint(tt.url)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.port, port)
		})
	}
}

func TestNewCluster(t *testing.T) {
	t.Run("configured values applied", func(t *testing.T) {
		p := NewCassandraProvider(config.DatabaseConfig{
			URL:            "10.0.0.5:9043",
			Username:       "scylla",
			Password:       "secret",
			TimeoutSeconds: 5,
		})
		cluster := p.newCluster()

		require.Len(t, cluster.Hosts, 1)
		assert.Equal(t, "10.0.0.5", cluster.Hosts[0])
		assert.Equal(t, 9043, cluster.Port)
		assert.Equal(t, 5*time.Second, cluster.ConnectTimeout)
		assert.Equal(t, 5*time.Second, cluster.Timeout)
		assert.NotNil(t, cluster.Authenticator)
	})

	t.Run("zero timeout falls back to default", func(t *testing.T) {
		p := NewCassandraProvider(config.DatabaseConfig{URL: "127.0.0.1:9042"})
		cluster := p.newCluster()

		assert.Equal(t, time.Duration(config.DefaultTimeoutSeconds)*time.Second, cluster.ConnectTimeout)
		assert.Nil(t, cluster.Authenticator, "no credentials means no authenticator")
	})
}

func TestQualifiedNames(t *testing.T) {
	assert.Equal(t, "dev.users", Table{Keyspace: "dev", Name: "users"}.Qualified())
	assert.Equal(t, "dev.by_email", View{Keyspace: "dev", Name: "by_email"}.Qualified())
}
