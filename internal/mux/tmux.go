package mux

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/timvw/tmx/internal/model"
)

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	// socketPath selects a non-default server ("-S <path>"); empty uses the
	// user's default server.
	socketPath string

	// exec runs a tmux command and returns its stdout. Replaced in tests.
	exec func(ctx context.Context, args ...string) (string, error)
}

// NewTmux creates a tmux multiplexer targeting the default server.
func NewTmux() *Tmux {
	return NewTmuxWithSocket("")
}

// NewTmuxWithSocket creates a tmux multiplexer targeting the server
// listening on socketPath.
func NewTmuxWithSocket(socketPath string) *Tmux {
	t := &Tmux{socketPath: socketPath}
	t.exec = t.run
	return t
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// ListSessions returns all sessions on the server.
// A server that is not running has no sessions; that is not an error.
func (t *Tmux) ListSessions(ctx context.Context) ([]model.Session, error) {
	format := "#{session_name}\t#{session_windows}\t#{session_created}\t#{session_attached}"
	out, err := t.exec(ctx, "list-sessions", "-F", format)
	if err != nil {
		if isNoServer(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("tmux list-sessions: %w", err)
	}

	var sessions []model.Session
	for _, line := range splitLines(out) {
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			continue
		}
		windows, _ := strconv.Atoi(parts[1])
		created, _ := strconv.ParseInt(parts[2], 10, 64)
		attached, _ := strconv.Atoi(parts[3])
		sessions = append(sessions, model.Session{
			Name:      parts[0],
			Windows:   windows,
			Attached:  attached > 0,
			CreatedAt: time.Unix(created, 0),
		})
	}
	return sessions, nil
}

// HasSession reports whether the exact session name exists.
func (t *Tmux) HasSession(ctx context.Context, session string) bool {
	_, err := t.exec(ctx, "has-session", "-t", sessionTarget(session))
	return err == nil
}

// ListWindows returns the windows of a session.
func (t *Tmux) ListWindows(ctx context.Context, session string) ([]model.Window, error) {
	out, err := t.exec(ctx, "list-windows", "-t", sessionTarget(session), "-F", "#{window_index}\t#{window_name}")
	if err != nil {
		return nil, fmt.Errorf("tmux list-windows -t %s: %w", session, err)
	}

	var windows []model.Window
	for _, line := range splitLines(out) {
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			continue
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid window index in %q: %w", line, err)
		}
		windows = append(windows, model.Window{Index: idx, Name: parts[1]})
	}
	return windows, nil
}

// ListPanes returns the panes of one window.
// The current path is the last field so paths containing tabs survive.
func (t *Tmux) ListPanes(ctx context.Context, session string, window int) ([]model.Pane, error) {
	format := "#{pane_index}\t#{pane_pid}\t#{pane_current_command}\t#{pane_current_path}"
	target := windowTarget(session, window)
	out, err := t.exec(ctx, "list-panes", "-t", target, "-F", format)
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes -t %s: %w", target, err)
	}

	var panes []model.Pane
	for _, line := range splitLines(out) {
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			continue
		}
		idx, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid pane index in %q: %w", line, err)
		}
		pid, _ := strconv.Atoi(parts[1])
		panes = append(panes, model.Pane{
			Session: session,
			Window:  window,
			Index:   idx,
			PID:     pid,
			Command: parts[2],
			Cwd:     parts[3],
		})
	}
	return panes, nil
}

// NewSessionWithCwd creates a detached session starting in cwd.
func (t *Tmux) NewSessionWithCwd(ctx context.Context, session, cwd string) error {
	args := []string{"new-session", "-d", "-s", session}
	args = appendCwd(args, cwd)
	if _, err := t.exec(ctx, args...); err != nil {
		return fmt.Errorf("tmux new-session -s %s: %w", session, err)
	}
	return nil
}

// RenameWindow renames the window at index.
func (t *Tmux) RenameWindow(ctx context.Context, session string, window int, name string) error {
	target := windowTarget(session, window)
	if _, err := t.exec(ctx, "rename-window", "-t", target, name); err != nil {
		return fmt.Errorf("tmux rename-window -t %s: %w", target, err)
	}
	return nil
}

// NewWindowWithCwd appends a window after the last one in the session.
func (t *Tmux) NewWindowWithCwd(ctx context.Context, session, name, cwd string) error {
	// "=session:" with an empty window part selects the next free index.
	args := []string{"new-window", "-d", "-t", sessionTarget(session) + ":", "-n", name}
	args = appendCwd(args, cwd)
	if _, err := t.exec(ctx, args...); err != nil {
		return fmt.Errorf("tmux new-window -t %s -n %s: %w", session, name, err)
	}
	return nil
}

// SplitWindowInDir splits the window's active pane. The split is detached
// (-d) so the original pane stays active and every split of a window
// anchors on the same pane.
func (t *Tmux) SplitWindowInDir(ctx context.Context, session string, window int, dir SplitDirection, cwd string) error {
	target := windowTarget(session, window)
	args := []string{"split-window", "-d", "-t", target, dir.Flag()}
	args = appendCwd(args, cwd)
	if _, err := t.exec(ctx, args...); err != nil {
		return fmt.Errorf("tmux split-window -t %s %s: %w", target, dir.Flag(), err)
	}
	return nil
}

// SwitchClient moves the attached client to session. Only valid from
// inside tmux.
func (t *Tmux) SwitchClient(ctx context.Context, session string) error {
	if _, err := t.exec(ctx, "switch-client", "-t", sessionTarget(session)); err != nil {
		return fmt.Errorf("tmux switch-client -t %s: %w", session, err)
	}
	return nil
}

// AttachArgs returns the argv that attaches a terminal to session, for use
// with syscall.Exec when not already inside tmux.
func (t *Tmux) AttachArgs(session string) []string {
	args := []string{"tmux"}
	if t.socketPath != "" {
		args = append(args, "-S", t.socketPath)
	}
	return append(args, "attach-session", "-t", sessionTarget(session))
}

// run executes a tmux command and returns its stdout.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	if t.socketPath != "" {
		args = append([]string{"-S", t.socketPath}, args...)
	}
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// sessionTarget returns an exact-match session target. Without the "="
// prefix tmux falls back to prefix matching, so "dev" could hit "dev2".
func sessionTarget(session string) string {
	return "=" + session
}

func windowTarget(session string, window int) string {
	return sessionTarget(model.WindowTarget(session, window))
}

func appendCwd(args []string, cwd string) []string {
	if cwd == "" {
		return args
	}
	return append(args, "-c", cwd)
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// isNoServer reports whether err came from tmux having no server to talk to.
func isNoServer(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no server running") ||
		strings.Contains(msg, "error connecting to")
}
