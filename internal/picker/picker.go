// Package picker is the interactive template browser: a list of stored
// templates with a structural preview, from which a template can be
// launched into a new session or deleted.
package picker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/timvw/tmx/internal/mux"
	"github.com/timvw/tmx/internal/template"
)

type viewMode int

const (
	modeList viewMode = iota
	modeSessionName
	modeConfirmDelete
)

// messages
type templatesMsg struct {
	templates []template.SessionTemplate
	err       error
}

type launchedMsg struct {
	session string
	err     error
}

// SessionChecker reports whether a session name is taken.
type SessionChecker interface {
	HasSession(ctx context.Context, session string) bool
}

// Picker runs the interactive template browser.
type Picker struct {
	Store     *template.Store
	Launcher  *template.Launcher
	Sessions  SessionChecker // optional; nil skips the name-in-use check
	ThemeName string
}

// Result reports what the user did before the picker exited.
type Result struct {
	// Launched is the session created from a template, empty if none.
	Launched string
}

type pickerModel struct {
	ctx      context.Context
	store    *template.Store
	launcher *template.Launcher
	sessions SessionChecker
	styles   styles

	templates []template.SessionTemplate
	cursor    int
	mode      viewMode
	input     textinput.Model

	loading   bool
	launching bool
	message   string
	isErr     bool
	launched  string

	width  int
	height int
}

// Run shows the picker until the user quits or a launch succeeds.
func (p *Picker) Run(ctx context.Context) (*Result, error) {
	m := newModel(ctx, p)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	return &Result{Launched: final.(*pickerModel).launched}, nil
}

func newModel(ctx context.Context, p *Picker) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "session name"
	ti.CharLimit = 128
	ti.Width = 40

	return &pickerModel{
		ctx:      ctx,
		store:    p.Store,
		launcher: p.Launcher,
		sessions: p.Sessions,
		styles:   newStyles(ThemeByName(p.ThemeName)),
		input:    ti,
		loading:  true,
	}
}

func (m *pickerModel) Init() tea.Cmd {
	return m.loadTemplates()
}

func (m *pickerModel) loadTemplates() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		templates, err := store.List()
		return templatesMsg{templates: templates, err: err}
	}
}

func (m *pickerModel) launch(t template.SessionTemplate, session string) tea.Cmd {
	ctx := m.ctx
	launcher := m.launcher
	return func() tea.Msg {
		err := launcher.Launch(ctx, &t, session)
		return launchedMsg{session: session, err: err}
	}
}

// selected returns the template under the cursor, or nil.
func (m *pickerModel) selected() *template.SessionTemplate {
	if m.cursor < 0 || m.cursor >= len(m.templates) {
		return nil
	}
	return &m.templates[m.cursor]
}

func (m *pickerModel) setStatus(msg string, isErr bool) {
	m.message = msg
	m.isErr = isErr
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case templatesMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Load error: %v", msg.err), true)
			return m, nil
		}
		m.templates = msg.templates
		if m.cursor >= len(m.templates) {
			m.cursor = max(len(m.templates)-1, 0)
		}
		return m, nil

	case launchedMsg:
		m.launching = false
		if msg.err != nil {
			text := fmt.Sprintf("Launch failed: %v", msg.err)
			if !errors.Is(msg.err, template.ErrNoWindows) {
				text += " (windows created so far were kept)"
			}
			m.setStatus(text, true)
			return m, nil
		}
		m.launched = msg.session
		return m, tea.Quit
	}
	return m, nil
}

func (m *pickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSessionName:
		return m.handleSessionNameKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmDeleteKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *pickerModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.launching {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.templates)-1 {
			m.cursor++
		}

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		m.cursor = max(len(m.templates)-1, 0)

	case "r":
		m.loading = true
		m.setStatus("", false)
		return m, m.loadTemplates()

	case "enter":
		t := m.selected()
		if t == nil {
			return m, nil
		}
		m.mode = modeSessionName
		m.input.SetValue(t.Template.Name)
		m.input.CursorEnd()
		m.setStatus("", false)
		return m, m.input.Focus()

	case "d":
		if m.selected() != nil {
			m.mode = modeConfirmDelete
		}
	}
	return m, nil
}

func (m *pickerModel) handleSessionNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = modeList
		m.input.Blur()
		return m, nil

	case "enter":
		t := m.selected()
		name := strings.TrimSpace(m.input.Value())
		if t == nil || name == "" {
			return m, nil
		}
		if err := mux.ValidateSessionName(name); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if m.sessions != nil && m.sessions.HasSession(m.ctx, name) {
			m.setStatus(fmt.Sprintf("Session %q already exists", name), true)
			return m, nil
		}
		m.mode = modeList
		m.input.Blur()
		m.launching = true
		m.setStatus(fmt.Sprintf("Launching %q as %q...", t.Template.Name, name), false)
		return m, m.launch(*t, name)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *pickerModel) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeList
	t := m.selected()
	if t == nil {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y":
		name := t.Template.Name
		if err := m.store.Delete(name); err != nil {
			m.setStatus(fmt.Sprintf("Delete failed: %v", err), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Deleted %q", name), false)
		m.loading = true
		return m, m.loadTemplates()
	default:
		m.setStatus("Delete cancelled", false)
	}
	return m, nil
}

func (m *pickerModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Templates"))
	b.WriteString("  ")
	b.WriteString(m.styles.dim.Render(m.hints()))
	b.WriteString("\n")

	listWidth := max(m.width*40/100, 20)
	previewWidth := max(m.width-listWidth-3, 20)

	list := m.renderList(listWidth)
	preview := m.renderPreview(previewWidth)
	sep := m.styles.border.Render(strings.Repeat("│\n", max(lipgloss.Height(list), lipgloss.Height(preview))-1) + "│")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, " ", sep, " ", preview))
	b.WriteString("\n\n")

	switch m.mode {
	case modeSessionName:
		b.WriteString(m.styles.text.Render("Launch as: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeConfirmDelete:
		if t := m.selected(); t != nil {
			b.WriteString(m.styles.warn.Render(fmt.Sprintf("Delete template %q? (y/N)", t.Template.Name)))
			b.WriteString("\n")
		}
	}

	if m.message != "" {
		style := m.styles.ok
		if m.isErr {
			style = m.styles.err
		}
		b.WriteString(style.Render(m.message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *pickerModel) hints() string {
	switch m.mode {
	case modeSessionName:
		return "Enter=launch  Esc=cancel"
	case modeConfirmDelete:
		return "y=delete  any other key=cancel"
	}
	return "↑↓=select  Enter=launch  d=delete  r=reload  q=quit"
}

func (m *pickerModel) renderList(width int) string {
	if m.loading && len(m.templates) == 0 {
		return m.styles.dim.Render("Loading templates...")
	}
	if len(m.templates) == 0 {
		return m.styles.dim.Render("(no templates: run `tmx save <session>` to create one)")
	}

	lines := make([]string, 0, len(m.templates))
	for i, t := range m.templates {
		row := t.Template.Name
		if t.Template.Description != "" {
			row += " - " + t.Template.Description
		}
		row = truncate(row, width-2)
		if i == m.cursor {
			lines = append(lines, m.styles.selected.Render(padRight("> "+row, width)))
		} else {
			lines = append(lines, m.styles.text.Render("  "+row))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *pickerModel) renderPreview(width int) string {
	t := m.selected()
	if t == nil {
		return ""
	}
	return strings.Join(previewLines(t, width, m.styles), "\n")
}

// previewLines renders the structure of a template: each window with its
// directory and the split and directory of every pane.
func previewLines(t *template.SessionTemplate, width int, st styles) []string {
	lines := []string{
		st.title.Render(fmt.Sprintf("Template: %s", t.Template.Name)),
		st.dim.Render(t.Summary()),
		"",
	}
	if len(t.Windows) == 0 {
		lines = append(lines, st.err.Render("no windows: cannot be launched"))
		return lines
	}
	for i, win := range t.Windows {
		lines = append(lines,
			st.heading.Render(truncate(fmt.Sprintf("Window %d: %s", i, win.Name), width)),
			st.text.Render(truncate(fmt.Sprintf("  cwd: %s", shortenPath(win.Cwd)), width)),
			st.text.Render(fmt.Sprintf("  panes: %d", len(win.Panes))),
		)
		for pi, pane := range win.Panes {
			lines = append(lines, st.dim.Render(truncate(
				fmt.Sprintf("    [%d] %s: %s", pi, pane.Split, shortenPath(pane.Cwd)), width)))
		}
	}
	return lines
}
