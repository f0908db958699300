package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cqlls/cqlls/cmd/cqlls/commands"
	"github.com/cqlls/cqlls/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cqlls",
	Short: "cqlls - CQL language server",
	Long: `cqlls - a language server for CQL.

Context-aware completion (keyspaces, tables, columns, types, builtin
functions, statement snippets) and whole-document formatting for any
LSP-capable editor. Schema-backed completions come from a live
Cassandra/Scylla cluster when one is reachable and degrade to the static
set when it is not.

Available commands:
  serve   - Start the language server (stdio by default)
  check   - Diagnose cluster connectivity and version
  fmt     - Format .cql files
  config  - Show or initialize configuration
  version - Show version information

Examples:
  cqlls                             # bare invocation serves stdio LSP
  cqlls serve --websocket :9378     # WebSocket listening mode
  cqlls check                       # is the cluster reachable?
  cqlls fmt --write queries.cql     # format in place`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := commands.LoadConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		verbosity, _ := cmd.Flags().GetCount("verbose")
		if verbosity == 0 {
			verbosity = cfg.Log.Verbosity
		}
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")

		if err := logger.Initialize(verbosity, jsonLogs || cfg.Log.JSON, cfg.Log.File); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	// A bare `cqlls` is what editors configure as the server command.
	RunE: commands.RunServe,
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Structured JSON log output")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides discovery)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.FmtCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
