// Package config loads tmx configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the caller)
//  2. Environment variables (TMX_*, OTEL_EXPORTER_OTLP_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. .tmx.yaml in current directory
//  2. <user config dir>/tmx/config.yaml (~/.config/tmx/config.yaml on Linux)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const appName = "tmx"

// Config holds all tmx configuration.
type Config struct {
	// TemplateDir is the directory holding one <name>.toml file per template.
	TemplateDir string `yaml:"template_dir"`

	// Multiplexer settings
	Mux        string `yaml:"mux"`         // "tmux" or empty for auto-detect
	TmuxSocket string `yaml:"tmux_socket"` // non-default tmux server socket

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	LogFile  string `yaml:"log_file"`  // empty logs to stderr

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs, e.g. "Authorization=Basic abc123"

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		TemplateDir: DefaultTemplateDir(),
		LogLevel:    "warn",
	}
}

// DefaultTemplateDir returns <user config dir>/tmx/templates, falling back
// to ~/.config when the platform config dir cannot be determined.
func DefaultTemplateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appName, "templates")
	}
	return filepath.Join(expandHome("~/.config"), appName, "templates")
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	path, data, err := findConfigFile()
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	mergeEnv(cfg)
	cfg.TemplateDir = expandHome(cfg.TemplateDir)
	cfg.LogFile = expandHome(cfg.LogFile)
	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
// Returns an error wrapping fs.ErrNotExist when no file exists.
func findConfigFile() (string, []byte, error) {
	candidates := []string{".tmx.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, appName, "config.yaml"))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return "", nil, fmt.Errorf("no config file found: %w", fs.ErrNotExist)
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.TemplateDir != "" {
		cfg.TemplateDir = file.TemplateDir
	}
	if file.Mux != "" {
		cfg.Mux = file.Mux
	}
	if file.TmuxSocket != "" {
		cfg.TmuxSocket = file.TmuxSocket
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("TMX_TEMPLATE_DIR"); v != "" {
		cfg.TemplateDir = v
	}
	if v := os.Getenv("TMX_MUX"); v != "" {
		cfg.Mux = v
	}
	if v := os.Getenv("TMX_TMUX_SOCKET"); v != "" {
		cfg.TmuxSocket = v
	}
	if v := os.Getenv("TMX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TMX_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
