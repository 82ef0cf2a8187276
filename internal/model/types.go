package model

import (
	"fmt"
	"time"
)

// Session represents a live terminal multiplexer session.
type Session struct {
	// Name is the session name.
	Name string `json:"name"`
	// Windows is the number of windows in the session.
	Windows int `json:"windows"`
	// Attached reports whether at least one client is attached.
	Attached bool `json:"attached"`
	// CreatedAt is when the session was created.
	CreatedAt time.Time `json:"created_at"`
}

// Window represents a window within a session.
type Window struct {
	// Index is the window index as reported by the multiplexer (e.g., 0 in "work:0").
	Index int `json:"index"`
	// Name is the window name.
	Name string `json:"name"`
}

// Pane represents a terminal multiplexer pane.
type Pane struct {
	// Session is the session name.
	Session string `json:"session"`
	// Window is the window index.
	Window int `json:"window"`
	// Index is the pane index within the window.
	Index int `json:"index"`
	// Cwd is the pane's current working directory.
	Cwd string `json:"cwd"`
	// PID is the pane's shell process ID.
	PID int `json:"pid"`
	// Command is the current command running in the pane (e.g., "nvim", "bash").
	Command string `json:"command"`
}

// Target returns the fully qualified pane identifier (e.g., "session:0.1").
func (p Pane) Target() string {
	return fmt.Sprintf("%s:%d.%d", p.Session, p.Window, p.Index)
}

// WindowTarget returns the tmux target for a window ("session:index").
func WindowTarget(session string, index int) string {
	return fmt.Sprintf("%s:%d", session, index)
}
