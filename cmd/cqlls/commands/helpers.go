package commands

import (
	"github.com/spf13/cobra"

	"github.com/cqlls/cqlls/config"
	"github.com/cqlls/cqlls/errors"
)

// LoadConfig resolves configuration for a command invocation. An explicit
// --config path bypasses discovery; --cluster, on the commands that define
// it, overlays a named connection profile on the database section.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if cluster, _ := cmd.Flags().GetString("cluster"); cluster != "" {
		if err := config.ApplyClusterProfile(cfg, cluster); err != nil {
			return nil, errors.Wrapf(err, "failed to apply cluster profile %q", cluster)
		}
	}
	return cfg, nil
}
