package config

import "github.com/cqlls/cqlls/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "database.url cannot be empty")
	}

	// Timeout: 0 would mean "hang forever" on a dead cluster, which stalls
	// every schema-backed completion
	if c.Database.TimeoutSeconds <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"database.timeout_seconds must be > 0, got %d", c.Database.TimeoutSeconds)
	}

	if c.Log.Verbosity < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// Max documents: 0 = unlimited is not supported, the cap exists to bound
	// memory against misbehaving clients
	if c.Server.MaxDocuments <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig,
			"server.max_documents must be > 0, got %d", c.Server.MaxDocuments)
	}

	return nil
}
