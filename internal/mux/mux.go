// Package mux provides an abstraction over terminal multiplexers (tmux, zellij).
//
// This package is pure transport. It reads session topology and issues
// layout commands without knowing anything about templates; the template
// package decides what to ask for and in which order.
package mux

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/timvw/tmx/internal/model"
)

// ErrInvalidSessionName is returned for names tmux would not keep verbatim.
var ErrInvalidSessionName = errors.New("invalid session name")

// ValidateSessionName rejects names that cannot be used as an exact session
// target. tmux rewrites "." and ":" to "_" on new-session, so a session
// created under such a name can no longer be found by it.
func ValidateSessionName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidSessionName)
	case strings.ContainsAny(name, ".:"):
		return fmt.Errorf("%w: %q must not contain '.' or ':'", ErrInvalidSessionName, name)
	}
	return nil
}

// SplitDirection selects how a pane is divided.
type SplitDirection string

const (
	// SplitVertical stacks the new pane below the anchor (tmux split-window -v).
	SplitVertical SplitDirection = "vertical"
	// SplitHorizontal places the new pane beside the anchor (tmux split-window -h).
	SplitHorizontal SplitDirection = "horizontal"
)

// Flag returns the tmux split-window flag for the direction.
func (d SplitDirection) Flag() string {
	if d == SplitHorizontal {
		return "-h"
	}
	return "-v"
}

// Multiplexer abstracts terminal multiplexer operations.
// Implementations exist for tmux and (future) zellij.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux", "zellij").
	Name() string

	// ListSessions returns all running sessions.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// HasSession reports whether a session with the exact name exists.
	HasSession(ctx context.Context, session string) bool

	// ListWindows returns the windows of a session in index order.
	ListWindows(ctx context.Context, session string) ([]model.Window, error)

	// ListPanes returns the panes of one window in index order.
	ListPanes(ctx context.Context, session string, window int) ([]model.Pane, error)

	// NewSessionWithCwd creates a detached session whose first window starts in cwd.
	NewSessionWithCwd(ctx context.Context, session, cwd string) error

	// RenameWindow renames the window at index.
	RenameWindow(ctx context.Context, session string, window int, name string) error

	// NewWindowWithCwd appends a named window starting in cwd.
	NewWindowWithCwd(ctx context.Context, session, name, cwd string) error

	// SplitWindowInDir splits the window's anchor pane, starting the new pane in cwd.
	SplitWindowInDir(ctx context.Context, session string, window int, dir SplitDirection, cwd string) error
}
