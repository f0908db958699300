package config

// Config represents the core cqlls configuration. The toml tags keep the
// files written by `config init` readable back through viper with the same
// keys a user would write by hand.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
	Server   ServerConfig   `mapstructure:"server" toml:"server"`
}

// DatabaseConfig configures the connection used for schema lookups.
// Completions work without a reachable cluster; schema-backed strategies
// just come back empty.
type DatabaseConfig struct {
	URL            string `mapstructure:"url" toml:"url"`                         // host:port of a contact point
	Username       string `mapstructure:"username" toml:"username"`               //
	Password       string `mapstructure:"password" toml:"password"`               //
	Cluster        string `mapstructure:"cluster" toml:"cluster"`                 // named profile from clusters.toml, overrides url/credentials
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"` // connection timeout per schema query
}

// LogConfig configures logging output
type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity" toml:"verbosity"` // 0-4, same ladder as -v flags
	JSON      bool   `mapstructure:"json" toml:"json"`           // structured JSON instead of console format
	File      string `mapstructure:"file" toml:"file"`           // log file path, empty disables the file sink
}

// ServerConfig configures the language server itself
type ServerConfig struct {
	WebSocket    string `mapstructure:"websocket" toml:"websocket"`         // listen address for WebSocket mode, empty = stdio
	MaxDocuments int    `mapstructure:"max_documents" toml:"max_documents"` // cap on tracked documents per session
}

// Connection defaults match a locally hosted cluster with stock credentials.
const (
	DefaultDatabaseURL    = "127.0.0.1:9042"
	DefaultUsername       = "cassandra"
	DefaultPassword       = "cassandra"
	DefaultTimeoutSeconds = 3
	DefaultMaxDocuments   = 100
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
