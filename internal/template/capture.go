package template

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/tmx/internal/logger"
	"github.com/timvw/tmx/internal/mux"
)

var tracer = otel.Tracer("tmx")

// Capture reads the windows and panes of a live session and returns a
// template named after the session with an empty description.
//
// Split types are inferred from pane order alone (see InferSplit): the
// multiplexer's pane listing carries no parent/child relationships, so the
// real split tree is not recovered. Any multiplexer error aborts the
// capture.
func Capture(ctx context.Context, m mux.Multiplexer, session string) (*SessionTemplate, error) {
	ctx, span := tracer.Start(ctx, "template.capture",
		trace.WithAttributes(attribute.String("tmx.session", session)))
	defer span.End()

	log := logger.WithComponent("capture").With("session", session)

	windows, err := m.ListWindows(ctx, session)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("capturing session %q: %w", session, err)
	}

	t := &SessionTemplate{Template: Meta{Name: session}}
	for _, win := range windows {
		panes, err := m.ListPanes(ctx, session, win.Index)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("capturing session %q window %d: %w", session, win.Index, err)
		}

		wt := WindowTemplate{Name: win.Name}
		if len(panes) > 0 {
			wt.Cwd = panes[0].Cwd
		}
		for i, p := range panes {
			wt.Panes = append(wt.Panes, PaneTemplate{Cwd: p.Cwd, Split: InferSplit(i)})
		}
		log.Debug("captured window", "index", win.Index, "name", win.Name, "panes", len(panes))
		t.Windows = append(t.Windows, wt)
	}

	span.SetAttributes(
		attribute.Int("tmx.windows", len(t.Windows)),
		attribute.Int("tmx.panes", t.PaneCount()),
	)
	log.Info("session captured", "windows", len(t.Windows), "panes", t.PaneCount())
	return t, nil
}

// InferSplit returns the split type assigned to the pane at position i of a
// window: the first pane is full, then panes alternate horizontal (odd) and
// vertical (even).
func InferSplit(i int) SplitType {
	switch {
	case i == 0:
		return SplitFull
	case i%2 == 1:
		return SplitHorizontal
	default:
		return SplitVertical
	}
}
