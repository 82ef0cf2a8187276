package template

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/tmx/internal/logger"
	"github.com/timvw/tmx/internal/mux"
	ppotel "github.com/timvw/tmx/internal/otel"
)

// Launcher replays templates into new sessions.
type Launcher struct {
	Mux     mux.Multiplexer
	Metrics *ppotel.Metrics // nil-safe
}

// NewLauncher returns a Launcher driving m.
func NewLauncher(m mux.Multiplexer) *Launcher {
	return &Launcher{Mux: m}
}

// Launch creates session from t.
//
// The session is created in the first window's directory and that window is
// renamed; each later window is appended with its name and directory. Inside
// every window, panes after the first are split off the window's anchor
// pane in template order. Window i of the template is addressed as index i,
// which assumes the multiplexer numbers windows from 0 without gaps.
//
// session must pass mux.ValidateSessionName; it is checked before any
// multiplexer call. The first failing call aborts the launch. Windows and
// panes created before the failure are left in place; the caller gets the
// partial session and the error.
func (l *Launcher) Launch(ctx context.Context, t *SessionTemplate, session string) (err error) {
	if err := mux.ValidateSessionName(session); err != nil {
		return fmt.Errorf("launching template %q: %w", t.Template.Name, err)
	}
	if len(t.Windows) == 0 {
		return fmt.Errorf("launching template %q: %w", t.Template.Name, ErrNoWindows)
	}

	ctx, span := tracer.Start(ctx, "template.launch",
		trace.WithAttributes(
			attribute.String("tmx.template", t.Template.Name),
			attribute.String("tmx.session", session),
			attribute.Int("tmx.windows", len(t.Windows)),
		))
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			l.Metrics.RecordError(ctx, "launch")
		} else {
			l.Metrics.RecordLaunched(ctx)
		}
		span.End()
	}()

	log := logger.WithComponent("launch").With("template", t.Template.Name, "session", session)

	first := t.Windows[0]
	if err := l.Mux.NewSessionWithCwd(ctx, session, first.Cwd); err != nil {
		return fmt.Errorf("launching template %q as %q: %w", t.Template.Name, session, err)
	}
	l.Metrics.RecordLayoutCommand(ctx, "new_session")

	if err := l.Mux.RenameWindow(ctx, session, 0, first.Name); err != nil {
		return fmt.Errorf("launching template %q as %q: %w", t.Template.Name, session, err)
	}
	l.Metrics.RecordLayoutCommand(ctx, "rename_window")

	if err := l.splitPanes(ctx, session, 0, first); err != nil {
		return fmt.Errorf("launching template %q as %q: %w", t.Template.Name, session, err)
	}
	log.Debug("window created", "index", 0, "name", first.Name, "panes", len(first.Panes))

	for i, win := range t.Windows[1:] {
		index := i + 1
		if err := l.Mux.NewWindowWithCwd(ctx, session, win.Name, win.Cwd); err != nil {
			return fmt.Errorf("launching template %q as %q: %w", t.Template.Name, session, err)
		}
		l.Metrics.RecordLayoutCommand(ctx, "new_window")

		if err := l.splitPanes(ctx, session, index, win); err != nil {
			return fmt.Errorf("launching template %q as %q: %w", t.Template.Name, session, err)
		}
		log.Debug("window created", "index", index, "name", win.Name, "panes", len(win.Panes))
	}

	log.Info("template launched", "windows", len(t.Windows), "panes", t.PaneCount())
	return nil
}

// splitPanes creates the panes after the founding one. Every split targets
// the window rather than the newest pane, so the result is a flat fan of
// splits off one anchor, not a nested tree.
func (l *Launcher) splitPanes(ctx context.Context, session string, window int, win WindowTemplate) error {
	if len(win.Panes) < 2 {
		return nil
	}
	for _, pane := range win.Panes[1:] {
		dir, ok := SplitDirection(pane.Split)
		if !ok {
			continue
		}
		if err := l.Mux.SplitWindowInDir(ctx, session, window, dir, pane.Cwd); err != nil {
			return err
		}
		l.Metrics.RecordLayoutCommand(ctx, "split")
	}
	return nil
}

// SplitDirection maps a split type to the multiplexer direction that
// produces it. A horizontal split stacks panes top/bottom, which tmux calls
// a vertical split (-v); a vertical split places them side by side (-h).
// SplitFull has no direction and reports false.
func SplitDirection(s SplitType) (mux.SplitDirection, bool) {
	switch s {
	case SplitHorizontal:
		return mux.SplitVertical, true
	case SplitVertical:
		return mux.SplitHorizontal, true
	case SplitFull:
		return "", false
	default:
		return "", false
	}
}
