// Package template captures live multiplexer sessions as declarative
// templates, persists them, and replays them into new sessions.
//
// A template records, per window, a flat list of panes with the split that
// produced each one. It does not record the split tree, so replay is an
// approximation: every later pane is split off the window's first pane.
// Simple two and three pane layouts come back faithfully; deeper nesting
// does not.
package template

import (
	"fmt"
	"strings"
)

// SplitType is how a pane was derived from its window's first pane.
type SplitType int

const (
	// SplitFull is the window's founding pane; it is never split off anything.
	SplitFull SplitType = iota
	// SplitHorizontal divides along a horizontal line: panes stacked top/bottom.
	SplitHorizontal
	// SplitVertical divides along a vertical line: panes side by side.
	SplitVertical
)

// String returns the serialized form ("full", "horizontal", "vertical").
func (s SplitType) String() string {
	switch s {
	case SplitFull:
		return "full"
	case SplitHorizontal:
		return "horizontal"
	case SplitVertical:
		return "vertical"
	default:
		return fmt.Sprintf("SplitType(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s SplitType) MarshalText() ([]byte, error) {
	switch s {
	case SplitFull, SplitHorizontal, SplitVertical:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid split type %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *SplitType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "full":
		*s = SplitFull
	case "horizontal":
		*s = SplitHorizontal
	case "vertical":
		*s = SplitVertical
	default:
		return fmt.Errorf("invalid split type %q (want full, horizontal or vertical)", text)
	}
	return nil
}

// Meta identifies a template.
type Meta struct {
	// Name is the unique template name and the store's file key.
	Name string `toml:"name" yaml:"name" json:"name"`
	// Description is free text shown next to the name.
	Description string `toml:"description" yaml:"description" json:"description"`
}

// PaneTemplate describes one pane of a window.
type PaneTemplate struct {
	// Cwd is the pane's working directory.
	Cwd string `toml:"cwd" yaml:"cwd" json:"cwd"`
	// Split is how the pane is created during replay.
	Split SplitType `toml:"split" yaml:"split" json:"split"`
}

// WindowTemplate describes one window. Panes[0] is the founding pane;
// later panes are created in order.
type WindowTemplate struct {
	Name  string         `toml:"name" yaml:"name" json:"name"`
	Cwd   string         `toml:"cwd" yaml:"cwd" json:"cwd"`
	Panes []PaneTemplate `toml:"panes" yaml:"panes" json:"panes"`
}

// SessionTemplate is the persisted description of a session.
// Windows[0] is the window the session is created with.
type SessionTemplate struct {
	Template Meta             `toml:"template" yaml:"template" json:"template"`
	Windows  []WindowTemplate `toml:"windows" yaml:"windows" json:"windows"`
}

// PaneCount returns the total number of panes across all windows.
func (t *SessionTemplate) PaneCount() int {
	n := 0
	for _, w := range t.Windows {
		n += len(w.Panes)
	}
	return n
}

// Summary returns a one-line shape description, e.g. "2 windows, 5 panes".
func (t *SessionTemplate) Summary() string {
	return fmt.Sprintf("%s, %s",
		plural(len(t.Windows), "window"),
		plural(t.PaneCount(), "pane"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
