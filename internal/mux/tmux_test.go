package mux

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fakeExec records tmux invocations and replies with canned output.
type fakeExec struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeExec) run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	return f.output, f.err
}

func newFakeTmux(f *fakeExec) *Tmux {
	t := NewTmux()
	t.exec = f.run
	return t
}

func TestTmux_ListWindows(t *testing.T) {
	f := &fakeExec{output: "0\teditor\n1\tlogs\n\n"}
	tm := newFakeTmux(f)

	windows, err := tm.ListWindows(context.Background(), "dev")
	if err != nil {
		t.Fatalf("ListWindows() error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if windows[1].Index != 1 || windows[1].Name != "logs" {
		t.Errorf("window 1: got %+v", windows[1])
	}
	want := []string{"list-windows", "-t", "=dev", "-F", "#{window_index}\t#{window_name}"}
	if !reflect.DeepEqual(f.calls[0], want) {
		t.Errorf("args: got %q, want %q", f.calls[0], want)
	}
}

func TestTmux_ListWindows_BadIndex(t *testing.T) {
	tm := newFakeTmux(&fakeExec{output: "x\teditor\n"})
	if _, err := tm.ListWindows(context.Background(), "dev"); err == nil {
		t.Fatal("expected error for non-numeric window index")
	}
}

func TestTmux_ListPanes(t *testing.T) {
	f := &fakeExec{output: "0\t100\tzsh\t/home/me/src\n1\t101\tnvim\t/home/me/with\ttab\n"}
	tm := newFakeTmux(f)

	panes, err := tm.ListPanes(context.Background(), "dev", 2)
	if err != nil {
		t.Fatalf("ListPanes() error: %v", err)
	}
	if len(panes) != 2 {
		t.Fatalf("expected 2 panes, got %d", len(panes))
	}
	if panes[0].Cwd != "/home/me/src" || panes[0].PID != 100 || panes[0].Command != "zsh" {
		t.Errorf("pane 0: got %+v", panes[0])
	}
	if panes[1].Cwd != "/home/me/with\ttab" {
		t.Errorf("pane 1 cwd: got %q", panes[1].Cwd)
	}
	if panes[1].Session != "dev" || panes[1].Window != 2 || panes[1].Index != 1 {
		t.Errorf("pane 1 location: got %+v", panes[1])
	}
	if got := f.calls[0][2]; got != "=dev:2" {
		t.Errorf("target: got %q, want %q", got, "=dev:2")
	}
}

func TestTmux_ListSessions(t *testing.T) {
	f := &fakeExec{output: "dev\t3\t1700000000\t1\nscratch\t1\t1700000100\t0\n"}
	tm := newFakeTmux(f)

	sessions, err := tm.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions() error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Name != "dev" || sessions[0].Windows != 3 || !sessions[0].Attached {
		t.Errorf("session 0: got %+v", sessions[0])
	}
	if sessions[1].Attached {
		t.Error("session 1 should not be attached")
	}
	if sessions[1].CreatedAt.Unix() != 1700000100 {
		t.Errorf("session 1 created: got %d", sessions[1].CreatedAt.Unix())
	}
}

func TestTmux_ListSessions_NoServer(t *testing.T) {
	tm := newFakeTmux(&fakeExec{err: errors.New("exit status 1: no server running on /tmp/tmux-1000/default")})
	sessions, err := tm.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("expected no error without a server, got %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected no sessions, got %d", len(sessions))
	}
}

func TestTmux_LayoutCommands(t *testing.T) {
	tests := []struct {
		name string
		call func(tm *Tmux) error
		want []string
	}{
		{
			name: "new session with cwd",
			call: func(tm *Tmux) error { return tm.NewSessionWithCwd(context.Background(), "dev", "/src") },
			want: []string{"new-session", "-d", "-s", "dev", "-c", "/src"},
		},
		{
			name: "new session without cwd",
			call: func(tm *Tmux) error { return tm.NewSessionWithCwd(context.Background(), "dev", "") },
			want: []string{"new-session", "-d", "-s", "dev"},
		},
		{
			name: "rename window",
			call: func(tm *Tmux) error { return tm.RenameWindow(context.Background(), "dev", 0, "editor") },
			want: []string{"rename-window", "-t", "=dev:0", "editor"},
		},
		{
			name: "new window",
			call: func(tm *Tmux) error { return tm.NewWindowWithCwd(context.Background(), "dev", "logs", "/var/log") },
			want: []string{"new-window", "-d", "-t", "=dev:", "-n", "logs", "-c", "/var/log"},
		},
		{
			name: "split top/bottom",
			call: func(tm *Tmux) error {
				return tm.SplitWindowInDir(context.Background(), "dev", 1, SplitVertical, "/tmp")
			},
			want: []string{"split-window", "-d", "-t", "=dev:1", "-v", "-c", "/tmp"},
		},
		{
			name: "split side by side",
			call: func(tm *Tmux) error {
				return tm.SplitWindowInDir(context.Background(), "dev", 0, SplitHorizontal, "/tmp")
			},
			want: []string{"split-window", "-d", "-t", "=dev:0", "-h", "-c", "/tmp"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeExec{}
			if err := tt.call(newFakeTmux(f)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f.calls) != 1 {
				t.Fatalf("expected 1 tmux call, got %d", len(f.calls))
			}
			if !reflect.DeepEqual(f.calls[0], tt.want) {
				t.Errorf("args: got %q, want %q", f.calls[0], tt.want)
			}
		})
	}
}

func TestTmux_ErrorsNameTheSession(t *testing.T) {
	cause := errors.New("exit status 1: duplicate session: dev")
	tm := newFakeTmux(&fakeExec{err: cause})

	err := tm.NewSessionWithCwd(context.Background(), "dev", "/src")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "dev") {
		t.Errorf("error should mention the session: %v", err)
	}
}

func TestTmux_HasSession(t *testing.T) {
	f := &fakeExec{}
	tm := newFakeTmux(f)
	if !tm.HasSession(context.Background(), "dev") {
		t.Error("expected HasSession true on success")
	}
	if got := f.calls[0]; !reflect.DeepEqual(got, []string{"has-session", "-t", "=dev"}) {
		t.Errorf("args: got %q", got)
	}

	f.err = errors.New("can't find session")
	if tm.HasSession(context.Background(), "dev") {
		t.Error("expected HasSession false on error")
	}
}

func TestSplitDirection_Flag(t *testing.T) {
	if SplitVertical.Flag() != "-v" {
		t.Errorf("SplitVertical: got %q", SplitVertical.Flag())
	}
	if SplitHorizontal.Flag() != "-h" {
		t.Errorf("SplitHorizontal: got %q", SplitHorizontal.Flag())
	}
}

func TestTmux_SwitchClient(t *testing.T) {
	f := &fakeExec{}
	tm := newFakeTmux(f)
	if err := tm.SwitchClient(context.Background(), "dev"); err != nil {
		t.Fatalf("SwitchClient() error: %v", err)
	}
	if got := f.calls[0]; !reflect.DeepEqual(got, []string{"switch-client", "-t", "=dev"}) {
		t.Errorf("args: got %q", got)
	}
}

func TestTmux_AttachArgs(t *testing.T) {
	if got := NewTmux().AttachArgs("dev"); !reflect.DeepEqual(got, []string{"tmux", "attach-session", "-t", "=dev"}) {
		t.Errorf("default socket: got %q", got)
	}
	got := NewTmuxWithSocket("/tmp/s").AttachArgs("dev")
	want := []string{"tmux", "-S", "/tmp/s", "attach-session", "-t", "=dev"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("custom socket: got %q, want %q", got, want)
	}
}

func TestValidateSessionName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "dev"},
		{name: "my-proj_2"},
		{name: "wörk space"},
		{name: "", wantErr: true},
		{name: "  ", wantErr: true},
		{name: "my.proj", wantErr: true},
		{name: "a:b", wantErr: true},
	}
	for _, tt := range tests {
		err := ValidateSessionName(tt.name)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSessionName) {
				t.Errorf("ValidateSessionName(%q) = %v, want ErrInvalidSessionName", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateSessionName(%q) unexpected error: %v", tt.name, err)
		}
	}
}
