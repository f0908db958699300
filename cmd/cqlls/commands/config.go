package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cqlls/cqlls/config"
	"github.com/cqlls/cqlls/errors"
)

// ConfigCmd manages cqlls configuration.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cqlls configuration",
	Long: `Display and manage cqlls configuration.

Configuration sources (in order of precedence):
1. Environment variables (CQLLS_* prefix, plus the legacy CQL_LSP_DB_* names)
2. Project config (.cqlls.toml, searched upward from the working directory)
3. User config (~/.config/cqlls/config.toml)
4. System config (/etc/cqlls/config.toml)
5. Default values

Examples:
  cqlls config show               # Show resolved configuration
  cqlls config show --format json # Show configuration as JSON
  cqlls config init               # Write a default user config file
  cqlls config where              # Show which config files were checked`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Long:  "Display the configuration resolved from all sources, with credentials redacted.",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default user config file",
	Long:  "Write the default configuration to the user config path unless one already exists.",
	RunE:  runConfigInit,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runConfigWhere,
}

var configShowFormat string

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	// Never print credentials.
	redacted := *cfg
	if redacted.Database.Password != "" {
		redacted.Database.Password = "[redacted]"
	}

	switch configShowFormat {
	case "json":
		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(redacted)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Printf("# cqlls configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(redacted)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Printf("# cqlls configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configShowFormat)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.EnsureDefaultConfig()
	if err != nil {
		return errors.Wrap(err, "failed to write default config")
	}
	pterm.Success.Printf("wrote %s\n", path)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	type source struct {
		label string
		path  string
	}
	sources := []source{
		{"system", "/etc/cqlls/config.toml"},
	}
	if userDir := config.UserConfigDir(); userDir != "" {
		sources = append(sources, source{"user", filepath.Join(userDir, "config.toml")})
	}
	if wd, err := os.Getwd(); err == nil {
		sources = append(sources, source{"project", filepath.Join(wd, ".cqlls.toml")})
	}
	sources = append(sources, source{"clusters", config.ClustersPath()})

	pterm.DefaultSection.Println("cqlls configuration sources")
	for _, src := range sources {
		if _, err := os.Stat(src.path); err == nil {
			pterm.Success.Printf("%-8s %s\n", src.label, src.path)
		} else {
			pterm.Info.Printf("%-8s %s (missing)\n", src.label, src.path)
		}
	}
	pterm.Info.Println("Environment overrides: CQLLS_* (plus CQL_LSP_DB_URL / CQL_LSP_DB_USER / CQL_LSP_DB_PASSWD)")
	return nil
}
