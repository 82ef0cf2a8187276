// Package logger holds the process-wide structured logger.
//
// Until Init is called, records go to stderr at the warn level so library
// code can log unconditionally without polluting command output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	root     *slog.Logger
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	mu       sync.Mutex
)

func init() {
	levelVar.Set(slog.LevelWarn)
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error)", name)
	}
}

// SetLevel changes the minimum level of the root logger.
func SetLevel(level slog.Level) {
	levelVar.Set(level)
}

// Init points the root logger at path, appending to it. An empty path logs
// to stderr. Calling Init again replaces the previous destination.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = os.Stderr
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		closeFileLocked()
		logFile = f
		w = f
	} else {
		closeFileLocked()
	}

	root = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
	return nil
}

// Get returns the root logger.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if root == nil {
		root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
	}
	return root
}

// WithComponent returns a logger with the component name attached.
//
//	log := logger.WithComponent("store")
//	log.Info("template saved", "name", name)
//	// Output: level=INFO msg="template saved" component=store name=dev
func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}

// Close closes the log file, if any. Later records go to stderr.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	root = nil
}

func closeFileLocked() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
