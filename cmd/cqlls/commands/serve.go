package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cqlls/cqlls/complete"
	"github.com/cqlls/cqlls/config"
	"github.com/cqlls/cqlls/document"
	"github.com/cqlls/cqlls/errors"
	"github.com/cqlls/cqlls/logger"
	"github.com/cqlls/cqlls/schema"
	"github.com/cqlls/cqlls/server"
)

// ServeCmd starts the language server.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the CQL language server",
	Long: `Start the language server on stdio (the mode editors spawn) or, with
--websocket, listening on a WebSocket address. Logging goes to stderr and
the log file; stdout stays clean for the LSP wire.`,
	RunE: RunServe,
}

func init() {
	ServeCmd.Flags().String("websocket", "", "Listen address for WebSocket mode (e.g. :9378); empty serves stdio")
	ServeCmd.Flags().String("cluster", "", "Named connection profile from clusters.toml")
}

// RunServe is the serve entrypoint. The root command reuses it so a bare
// `cqlls` serves stdio.
func RunServe(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	provider := schema.NewCassandraProvider(cfg.Database)

	// A dead cluster downgrades completions; it never blocks serving.
	if err := provider.Ping(cmd.Context()); err != nil {
		logger.Warnw("cluster unreachable at startup, schema completions degraded",
			"url", cfg.Database.URL, "error", err)
	} else if release, err := provider.ClusterVersion(cmd.Context()); err == nil {
		if err := schema.CheckVersion(release); err != nil {
			logger.Warnw("cluster version below supported minimum",
				"version", release, "error", err)
		} else {
			logger.Infow("connected to cluster", "url", cfg.Database.URL, "version", release)
		}
	}

	if watcher := startConfigWatcher(cmd); watcher != nil {
		defer watcher.Stop()
	}

	registry := document.NewRegistry(cfg.Server.MaxDocuments)
	srv := server.New(registry, complete.NewService(provider), logger.ComponentLogger("server"))

	addr, _ := cmd.Flags().GetString("websocket")
	if addr == "" {
		addr = cfg.Server.WebSocket
	}

	errChan := make(chan error, 1)
	go func() {
		if addr != "" {
			errChan <- srv.RunWebSocket(addr)
		} else {
			errChan <- srv.RunStdio()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			return errors.Wrap(err, "language server stopped")
		}
		logger.Infow("language server session ended", "session", srv.Session())
		return nil
	case <-sigChan:
		// First signal: let the transport drain briefly. Second signal or
		// the timeout forces the exit.
		logger.Infow("shutdown signal received (press Ctrl+C again to force)")
		select {
		case err := <-errChan:
			if err != nil {
				logger.Warnw("transport closed during shutdown", "error", err)
			}
		case <-sigChan:
			logger.Warnw("forced shutdown")
			logger.Cleanup()
			os.Exit(1)
		case <-time.After(2 * time.Second):
		}
		return nil
	}
}

// startConfigWatcher hot-reloads the user config file while serving. Only the
// logging section is applied live; connection changes need a restart. Returns
// nil (with a log line) whenever watching is not possible.
func startConfigWatcher(cmd *cobra.Command) *config.ConfigWatcher {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		// An explicit --config bypasses the standard merge that a reload
		// would recompute, so watching it would apply the wrong file.
		logger.Debugw("config watching disabled for explicit --config", "path", path)
		return nil
	}

	path := config.DefaultConfigPath()
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debugw("no user config file, config watching disabled", "path", path)
		return nil
	}

	watcher, err := config.NewConfigWatcher(path)
	if err != nil {
		logger.Warnw("failed to watch config file, restart to apply changes",
			"path", path, "error", err)
		return nil
	}
	config.SetGlobalWatcher(watcher)

	watcher.OnReload(func(newCfg *config.Config) error {
		logger.Infow("config reloaded, applying log settings",
			"verbosity", newCfg.Log.Verbosity, "json", newCfg.Log.JSON)
		return logger.Initialize(newCfg.Log.Verbosity, newCfg.Log.JSON, newCfg.Log.File)
	})

	watcher.Start()
	logger.Infow("config watcher started", "path", path)
	return watcher
}
