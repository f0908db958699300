package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/schema"
)

// CheckCmd diagnoses cluster connectivity.
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose cluster connectivity and version",
	Long: `Connect to the configured cluster and report reachability, the server
release version against the supported constraint, and the number of visible
keyspaces. Exits nonzero when the cluster is unreachable.`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().String("cluster", "", "Named connection profile from clusters.toml")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	provider := schema.NewCassandraProvider(cfg.Database)

	pterm.DefaultSection.Println("cqlls cluster check")
	pterm.Info.Printf("Contact point: %s (timeout %ds)\n", cfg.Database.URL, cfg.Database.TimeoutSeconds)
	if cfg.Database.Cluster != "" {
		pterm.Info.Printf("Cluster profile: %s\n", cfg.Database.Cluster)
	}

	if err := provider.Ping(cmd.Context()); err != nil {
		pterm.Error.Printf("Cluster unreachable: %v\n", err)
		pterm.Info.Println("The language server still works; schema completions degrade to the static set.")
		return errors.Wrap(err, "cluster unreachable")
	}
	pterm.Success.Println("Cluster reachable")

	release, err := provider.ClusterVersion(cmd.Context())
	if err != nil {
		pterm.Warning.Printf("Could not read release_version: %v\n", err)
	} else if err := schema.CheckVersion(release); err != nil {
		pterm.Warning.Printf("Cluster version %s is below the supported constraint %s\n",
			release, schema.MinimumVersionConstraint)
	} else {
		pterm.Success.Printf("Cluster version %s (supported: %s)\n",
			release, schema.MinimumVersionConstraint)
	}

	keyspaces, err := provider.Keyspaces(cmd.Context())
	if err != nil {
		pterm.Warning.Printf("Could not list keyspaces: %v\n", err)
	} else {
		pterm.Info.Printf("Keyspaces visible: %d\n", len(keyspaces))
	}
	return nil
}
