package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/timvw/tmx/internal/config"
	"github.com/timvw/tmx/internal/logger"
	"github.com/timvw/tmx/internal/mux"
	telem "github.com/timvw/tmx/internal/otel"
	"github.com/timvw/tmx/internal/template"
)

// Version is set at build time with -ldflags "-X github.com/timvw/tmx/cmd.Version=...".
var Version = "dev"

var (
	// Global flags. Empty means "use config file / env / default".
	flagTemplateDir string
	flagMux         string
	flagLogLevel    string
	flagLogFile     string
)

// Resolved by the root PersistentPreRunE before any subcommand runs.
var (
	cfg *config.Config
	tel *telem.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "tmx",
	Short: "Save and restore tmux session layouts as templates",
	Long: `tmx captures the layout of a running tmux session (windows, their
names and working directories, and the panes inside them) into a named
template, and launches new sessions from stored templates.

Templates are TOML files in the template directory, one per template.
They can be edited by hand.

Configuration is loaded from .tmx.yaml, <config dir>/tmx/config.yaml,
or TMX_* environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	shutdown()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().StringVar(&flagTemplateDir, "template-dir", "", "directory holding template files (default: <config dir>/tmx/templates)")
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", "", "terminal multiplexer: tmux (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "append logs to this file instead of stderr")
}

// setup loads configuration, then initializes logging and telemetry.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	applyFlags(loaded)
	cfg = loaded

	if err := logger.Init(cfg.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	if cfg.ConfigFile != "" {
		logger.Get().Debug("config loaded", "file", cfg.ConfigFile)
	}

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	tel, err = telem.Init(cmd.Context(), telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		logger.Get().Warn("otel init failed", "err", err)
	}
	return nil
}

// applyFlags overlays explicitly set global flags on the loaded config.
func applyFlags(c *config.Config) {
	if flagTemplateDir != "" {
		c.TemplateDir = flagTemplateDir
	}
	if flagMux != "" {
		c.Mux = flagMux
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		c.LogFile = flagLogFile
	}
}

// shutdown flushes telemetry and closes the log file.
func shutdown() {
	if tel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := tel.Shutdown(ctx); err != nil {
			logger.Get().Warn("otel shutdown failed", "err", err)
		}
		cancel()
		tel = nil
	}
	logger.Close()
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer() (mux.Multiplexer, error) {
	if cfg.TmuxSocket != "" && (cfg.Mux == "" || cfg.Mux == "tmux") {
		return mux.NewTmuxWithSocket(cfg.TmuxSocket), nil
	}
	if cfg.Mux != "" {
		return mux.FromName(cfg.Mux)
	}
	return mux.Detect()
}

// getStore returns the template store for the configured directory.
func getStore() *template.Store {
	return template.NewStore(cfg.TemplateDir)
}

// getMetrics returns the metric instruments, or nil when telemetry is off.
func getMetrics() *telem.Metrics {
	if tel == nil {
		return nil
	}
	return tel.Metrics
}
