package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults (stock local cluster)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("database.username", DefaultUsername)
	v.SetDefault("database.password", DefaultPassword)
	v.SetDefault("database.timeout_seconds", DefaultTimeoutSeconds)

	// Log defaults. The file sink is on by default so editor sessions leave a
	// trace even when the editor swallows stderr.
	v.SetDefault("log.verbosity", 1)
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", DefaultLogFile())

	// Server defaults
	v.SetDefault("server.websocket", "")
	v.SetDefault("server.max_documents", DefaultMaxDocuments)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment
// variables. The CQL_LSP_DB_* names are the legacy spellings; both work.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("database.url", "CQLLS_DATABASE_URL", "CQL_LSP_DB_URL")
	v.BindEnv("database.username", "CQLLS_DATABASE_USERNAME", "CQL_LSP_DB_USER")
	v.BindEnv("database.password", "CQLLS_DATABASE_PASSWORD", "CQL_LSP_DB_PASSWD")
}

// DefaultLogFile returns the default log file path under the user cache dir,
// or empty when no cache dir can be determined (file logging then stays off).
func DefaultLogFile() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cacheDir, "cqlls", "cqlls.log")
}

// UserConfigDir returns the cqlls config directory (~/.config/cqlls on Linux)
func UserConfigDir() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(cfgDir, "cqlls")
}
