package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Deletion failures shouldn't fail the config save
		logger.Warnw("Failed to delete old config backup",
			"path", back3,
			logger.FieldError, err)
	}

	// Rotate .back2 to .back3
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	// Rotate .back1 to .back2
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// DefaultConfigPath returns the user config file path (~/.config/cqlls/config.toml)
func DefaultConfigPath() string {
	userDir := UserConfigDir()
	if userDir == "" {
		return ""
	}
	return filepath.Join(userDir, "config.toml")
}

// Save writes the configuration to the given path as TOML, keeping rotating
// backups of any previous file.
func Save(cfg *Config, configPath string) error {
	if configPath == "" {
		return errors.New("could not determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// Mark this as our own write to prevent reload loops
	globalWatcherMu.Lock()
	if globalWatcher != nil {
		globalWatcher.MarkOwnWrite()
	}
	globalWatcherMu.Unlock()

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// EnsureDefaultConfig writes a default config file at the user config path if
// none exists yet, returning the path. Used by `cqlls config init`.
func EnsureDefaultConfig() (string, error) {
	configPath := DefaultConfigPath()
	if configPath == "" {
		return "", errors.New("could not determine config directory")
	}

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil // already present, leave it alone
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:            DefaultDatabaseURL,
			Username:       DefaultUsername,
			Password:       DefaultPassword,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Log: LogConfig{
			Verbosity: 1,
			File:      DefaultLogFile(),
		},
		Server: ServerConfig{
			MaxDocuments: DefaultMaxDocuments,
		},
	}

	if err := Save(cfg, configPath); err != nil {
		return "", err
	}
	return configPath, nil
}
