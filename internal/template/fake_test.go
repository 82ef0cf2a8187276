package template

import (
	"context"
	"fmt"

	"github.com/timvw/tmx/internal/model"
	"github.com/timvw/tmx/internal/mux"
)

// call is one recorded multiplexer invocation, flattened to strings so
// tests can compare sequences with a single Equal.
type call struct {
	op   string
	args []string
}

func (c call) String() string {
	return fmt.Sprintf("%s%v", c.op, c.args)
}

// fakeMux records every call and serves a canned session topology.
// If failAt > 0, the failAt-th call (1-based) returns failErr.
type fakeMux struct {
	windows map[string][]model.Window
	panes   map[string][]model.Pane // keyed by "session:window"
	calls   []call
	failAt  int
	failErr error
}

var _ mux.Multiplexer = (*fakeMux)(nil)

func newFakeMux() *fakeMux {
	return &fakeMux{
		windows: map[string][]model.Window{},
		panes:   map[string][]model.Pane{},
	}
}

// addWindow registers a window with panes rooted at the given directories.
func (f *fakeMux) addWindow(session string, index int, name string, cwds ...string) {
	f.windows[session] = append(f.windows[session], model.Window{Index: index, Name: name})
	key := model.WindowTarget(session, index)
	for i, cwd := range cwds {
		f.panes[key] = append(f.panes[key], model.Pane{Session: session, Window: index, Index: i, Cwd: cwd})
	}
}

func (f *fakeMux) record(op string, args ...string) error {
	f.calls = append(f.calls, call{op: op, args: args})
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return f.failErr
	}
	return nil
}

func (f *fakeMux) Name() string { return "fake" }

func (f *fakeMux) ListSessions(context.Context) ([]model.Session, error) {
	var sessions []model.Session
	for name, w := range f.windows {
		sessions = append(sessions, model.Session{Name: name, Windows: len(w)})
	}
	return sessions, nil
}

func (f *fakeMux) HasSession(_ context.Context, session string) bool {
	_, ok := f.windows[session]
	return ok
}

func (f *fakeMux) ListWindows(_ context.Context, session string) ([]model.Window, error) {
	if err := f.record("list_windows", session); err != nil {
		return nil, err
	}
	return f.windows[session], nil
}

func (f *fakeMux) ListPanes(_ context.Context, session string, window int) ([]model.Pane, error) {
	if err := f.record("list_panes", session, fmt.Sprint(window)); err != nil {
		return nil, err
	}
	return f.panes[model.WindowTarget(session, window)], nil
}

func (f *fakeMux) NewSessionWithCwd(_ context.Context, session, cwd string) error {
	return f.record("new_session", session, cwd)
}

func (f *fakeMux) RenameWindow(_ context.Context, session string, window int, name string) error {
	return f.record("rename_window", session, fmt.Sprint(window), name)
}

func (f *fakeMux) NewWindowWithCwd(_ context.Context, session, name, cwd string) error {
	return f.record("new_window", session, name, cwd)
}

func (f *fakeMux) SplitWindowInDir(_ context.Context, session string, window int, dir mux.SplitDirection, cwd string) error {
	return f.record("split", session, fmt.Sprint(window), string(dir), cwd)
}
