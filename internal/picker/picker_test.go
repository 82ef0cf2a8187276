package picker

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timvw/tmx/internal/model"
	"github.com/timvw/tmx/internal/mux"
	"github.com/timvw/tmx/internal/template"
)

// stubMux accepts every layout command and records the op names.
type stubMux struct {
	ops      []string
	existing map[string]bool
	err      error
}

func (s *stubMux) Name() string { return "stub" }
func (s *stubMux) ListSessions(context.Context) ([]model.Session, error) {
	return nil, nil
}
func (s *stubMux) HasSession(_ context.Context, name string) bool { return s.existing[name] }
func (s *stubMux) ListWindows(context.Context, string) ([]model.Window, error) {
	return nil, nil
}
func (s *stubMux) ListPanes(context.Context, string, int) ([]model.Pane, error) {
	return nil, nil
}
func (s *stubMux) NewSessionWithCwd(context.Context, string, string) error {
	s.ops = append(s.ops, "new_session")
	return s.err
}
func (s *stubMux) RenameWindow(context.Context, string, int, string) error {
	s.ops = append(s.ops, "rename_window")
	return nil
}
func (s *stubMux) NewWindowWithCwd(context.Context, string, string, string) error {
	s.ops = append(s.ops, "new_window")
	return nil
}
func (s *stubMux) SplitWindowInDir(context.Context, string, int, mux.SplitDirection, string) error {
	s.ops = append(s.ops, "split")
	return nil
}

func saveTemplate(t *testing.T, store *template.Store, name string) {
	t.Helper()
	tpl := &template.SessionTemplate{
		Template: template.Meta{Name: name, Description: "desc of " + name},
		Windows: []template.WindowTemplate{{
			Name: "editor",
			Cwd:  "/src",
			Panes: []template.PaneTemplate{
				{Cwd: "/src", Split: template.SplitFull},
				{Cwd: "/src/web", Split: template.SplitHorizontal},
			},
		}},
	}
	if err := store.Save(tpl); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
}

// newTestModel creates a picker model over a temp store holding the given
// templates, already loaded and sized.
func newTestModel(t *testing.T, names ...string) (*pickerModel, *stubMux) {
	t.Helper()
	store := template.NewStore(t.TempDir())
	for _, n := range names {
		saveTemplate(t, store, n)
	}
	sm := &stubMux{existing: map[string]bool{}}
	m := newModel(context.Background(), &Picker{
		Store:    store,
		Launcher: template.NewLauncher(sm),
		Sessions: sm,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(m.Init()())
	return m, sm
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInit_LoadsTemplatesSorted(t *testing.T) {
	m, _ := newTestModel(t, "web", "api")
	if len(m.templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(m.templates))
	}
	if m.templates[0].Template.Name != "api" {
		t.Errorf("first template: got %q, want api", m.templates[0].Template.Name)
	}
	if m.loading {
		t.Error("loading should be cleared after templatesMsg")
	}
}

func TestListKey_Navigation(t *testing.T) {
	m, _ := newTestModel(t, "a", "b", "c")

	m.handleKey(key("down"))
	m.handleKey(key("j"))
	m.handleKey(key("j")) // clamped at the end
	if m.cursor != 2 {
		t.Errorf("cursor after moving down: got %d, want 2", m.cursor)
	}
	m.handleKey(key("k"))
	if m.cursor != 1 {
		t.Errorf("cursor after k: got %d, want 1", m.cursor)
	}
	m.handleKey(key("g"))
	if m.cursor != 0 {
		t.Errorf("cursor after g: got %d, want 0", m.cursor)
	}
	m.handleKey(key("up")) // clamped at the start
	if m.cursor != 0 {
		t.Errorf("cursor after up at top: got %d, want 0", m.cursor)
	}
}

func TestListKey_EnterPromptsWithTemplateName(t *testing.T) {
	m, _ := newTestModel(t, "api")

	m.handleKey(key("enter"))
	if m.mode != modeSessionName {
		t.Fatalf("mode: got %v, want modeSessionName", m.mode)
	}
	if got := m.input.Value(); got != "api" {
		t.Errorf("prefilled session name: got %q, want api", got)
	}

	m.handleKey(key("esc"))
	if m.mode != modeList {
		t.Errorf("esc should return to the list")
	}
}

func TestSessionName_EnterLaunches(t *testing.T) {
	m, sm := newTestModel(t, "api")
	m.handleKey(key("enter"))

	_, cmd := m.handleKey(key("enter"))
	if cmd == nil {
		t.Fatal("expected a launch command")
	}
	if !m.launching {
		t.Error("expected launching state")
	}

	_, quit := m.Update(cmd())
	if m.launched != "api" {
		t.Errorf("launched: got %q, want api", m.launched)
	}
	if quit == nil {
		t.Error("expected quit after a successful launch")
	}
	want := []string{"new_session", "rename_window", "split"}
	if strings.Join(sm.ops, ",") != strings.Join(want, ",") {
		t.Errorf("ops: got %v, want %v", sm.ops, want)
	}
}

func TestSessionName_ExistingSessionRefused(t *testing.T) {
	m, sm := newTestModel(t, "api")
	sm.existing["api"] = true
	m.handleKey(key("enter"))

	_, cmd := m.handleKey(key("enter"))
	if cmd != nil {
		t.Error("no launch expected for an existing session")
	}
	if !m.isErr || !strings.Contains(m.message, "already exists") {
		t.Errorf("message: got %q", m.message)
	}
	if m.mode != modeSessionName {
		t.Error("should stay in the prompt so the name can be changed")
	}
}

func TestLaunchFailure_ShowsError(t *testing.T) {
	m, sm := newTestModel(t, "api")
	sm.err = errors.New("duplicate session")
	m.handleKey(key("enter"))
	_, cmd := m.handleKey(key("enter"))

	_, next := m.Update(cmd())
	if next != nil {
		t.Error("picker should stay open after a failed launch")
	}
	if m.launched != "" {
		t.Errorf("launched: got %q, want empty", m.launched)
	}
	if !m.isErr || !strings.Contains(m.message, "duplicate session") {
		t.Errorf("message: got %q", m.message)
	}
}

func TestDelete_ConfirmRemovesTemplate(t *testing.T) {
	m, _ := newTestModel(t, "api", "web")

	m.handleKey(key("d"))
	if m.mode != modeConfirmDelete {
		t.Fatalf("mode: got %v, want modeConfirmDelete", m.mode)
	}
	_, cmd := m.handleKey(key("y"))
	if cmd == nil {
		t.Fatal("expected reload after delete")
	}
	m.Update(cmd())

	if m.store.Exists("api") {
		t.Error("template api should be deleted")
	}
	if len(m.templates) != 1 || m.templates[0].Template.Name != "web" {
		t.Errorf("templates after delete: %+v", m.templates)
	}
}

func TestDelete_AnyOtherKeyCancels(t *testing.T) {
	m, _ := newTestModel(t, "api")

	m.handleKey(key("d"))
	m.handleKey(key("n"))
	if m.mode != modeList {
		t.Error("expected list mode after cancel")
	}
	if !m.store.Exists("api") {
		t.Error("template should still exist")
	}
}

func TestView_PreviewShowsStructure(t *testing.T) {
	m, _ := newTestModel(t, "api")
	view := m.View()

	for _, want := range []string{"Template: api", "Window 0: editor", "panes: 2", "[1] horizontal: /src/web", "desc of api"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestView_EmptyStore(t *testing.T) {
	m, _ := newTestModel(t)
	if view := m.View(); !strings.Contains(view, "no templates") {
		t.Errorf("expected empty hint, got:\n%s", view)
	}
	// Keys are harmless without templates.
	m.handleKey(key("enter"))
	m.handleKey(key("d"))
	if m.mode != modeList {
		t.Errorf("mode: got %v, want modeList", m.mode)
	}
}

func TestPreviewLines_NoWindows(t *testing.T) {
	tpl := &template.SessionTemplate{Template: template.Meta{Name: "empty"}}
	lines := previewLines(tpl, 80, newStyles(DarkTheme()))
	if !strings.Contains(strings.Join(lines, "\n"), "cannot be launched") {
		t.Errorf("expected launch warning, got %v", lines)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestShortenPath(t *testing.T) {
	t.Setenv("HOME", "/home/me")
	tests := map[string]string{
		"/home/me":     "~",
		"/home/me/src": "~/src",
		"/home/meadow": "/home/meadow",
		"/var/log":     "/var/log",
	}
	for in, want := range tests {
		if got := shortenPath(in); got != want {
			t.Errorf("shortenPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSessionName_RejectsNameTmuxWouldRewrite(t *testing.T) {
	m, sm := newTestModel(t, "my.proj")
	m.handleKey(key("enter"))

	_, cmd := m.handleKey(key("enter"))
	if cmd != nil {
		t.Error("no launch expected for a dotted session name")
	}
	if !m.isErr || !strings.Contains(m.message, "invalid session name") {
		t.Errorf("message: got %q", m.message)
	}
	if m.mode != modeSessionName {
		t.Error("should stay in the prompt so the name can be changed")
	}
	if len(sm.ops) != 0 {
		t.Errorf("ops: got %v, want none", sm.ops)
	}
}
