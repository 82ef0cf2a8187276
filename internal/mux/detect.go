package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// Detect auto-detects the active terminal multiplexer.
// It checks environment variables first, then falls back to checking
// if the multiplexer binary is installed.
func Detect() (Multiplexer, error) {
	return detect(os.Getenv, exec.LookPath)
}

// detect holds the decision logic of Detect with its environment injected.
func detect(getenv func(string) string, lookPath func(string) (string, error)) (Multiplexer, error) {
	if getenv("TMUX") != "" {
		return NewTmux(), nil
	}
	if getenv("ZELLIJ") != "" {
		return nil, fmt.Errorf("zellij support is not yet implemented")
	}

	// Fall back to an installed tmux binary. No running server is required:
	// launching a template starts one via new-session.
	if tmuxPath, err := lookPath("tmux"); err == nil && tmuxPath != "" {
		return NewTmux(), nil
	}

	return nil, fmt.Errorf("no supported terminal multiplexer detected (set $TMUX or install tmux)")
}

// FromName creates a Multiplexer by name.
func FromName(name string) (Multiplexer, error) {
	switch name {
	case "tmux":
		return NewTmux(), nil
	case "zellij":
		return nil, fmt.Errorf("zellij support is not yet implemented")
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}
