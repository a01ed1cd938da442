// Package renamer orchestrates one rename pass: classify every active
// pane, disambiguate directory-named windows against each other, compose
// final labels, and hand them to the apply sink.
package renamer

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/window-namer/internal/classify"
	"github.com/timvw/window-namer/internal/compose"
	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/events"
	"github.com/timvw/window-namer/internal/model"
	wnotel "github.com/timvw/window-namer/internal/otel"
	"github.com/timvw/window-namer/internal/pathshort"
)

var tracer = otel.Tracer("window-namer")

// Renamer computes window names for a snapshot of session panes.
type Renamer struct {
	Config  *config.Config
	Sink    events.Sink
	Metrics *wnotel.Metrics // nil-safe
}

// Rename computes one WindowName per input pane. The snapshot carries one
// pane per window (the window's active pane) by contract. The pass never
// fails: malformed panes degrade per-window, and the result order matches
// the input order.
func (r *Renamer) Rename(ctx context.Context, panes []model.PaneSnapshot) []model.WindowName {
	ctx, span := tracer.Start(ctx, "rename_pass",
		trace.WithAttributes(attribute.Int("windows.total", len(panes))))
	defer span.End()

	sink := metricSink{ctx: ctx, next: r.Sink, metrics: r.Metrics}
	composer := compose.New(r.Config, sink)

	// Classify every pane first; directory-named panes form one combined
	// sibling universe so a shell and a dir-program window in colliding
	// directories are disambiguated against each other.
	categories := make([]model.Category, len(panes))
	var siblings []string
	for i, p := range panes {
		cmd := p.CommandLine
		if cmd == "" {
			events.Emit(sink, events.KindClassifyFallback,
				"window %s: empty command line, treating as shell", p.WindowID)
		}
		categories[i] = classify.Classify(cmd, p.Directory, r.Config)
		if categories[i].UsesDirectory() {
			siblings = append(siblings, normalizeDir(categories[i].Directory, r.Config.UseTilde))
		}
	}

	results := make([]model.WindowName, len(panes))
	for i, p := range panes {
		cat := categories[i]

		var shortened string
		if cat.UsesDirectory() {
			dir := normalizeDir(cat.Directory, r.Config.UseTilde)
			shortened = pathshort.Shorten(dir, withoutOne(siblings, dir), false)
		}

		text := composer.Compose(cat, shortened)
		results[i] = model.WindowName{WindowID: p.WindowID, Text: text}

		events.Emit(sink, events.KindRenamed, "window %s (%s) -> %q", p.WindowID, cat.Kind, text)
		r.Metrics.RecordWindowNamed(ctx, cat.Kind.String())
	}

	span.SetAttributes(attribute.Int("windows.named", len(results)))
	return results
}

// metricSink forwards events unchanged and mirrors rule compile failures
// into the skipped-rules counter.
type metricSink struct {
	ctx     context.Context
	next    events.Sink
	metrics *wnotel.Metrics
}

func (s metricSink) Emit(e events.Event) {
	switch e.Kind {
	case events.KindRuleSkipped:
		s.metrics.RecordRuleSkipped(s.ctx)
	case events.KindClassifyFallback:
		s.metrics.RecordClassifyFallback(s.ctx)
	}
	if s.next != nil {
		s.next.Emit(e)
	}
}

// normalizeDir applies tilde substitution up front so sibling comparison
// and display agree.
func normalizeDir(dir string, useTilde bool) string {
	if !useTilde {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return dir
	}
	return pathshort.ApplyTilde(dir, home)
}

// withoutOne returns siblings with a single occurrence of self removed,
// so a window is never its own sibling while same-directory duplicates
// still see each other.
func withoutOne(siblings []string, self string) []string {
	out := make([]string, 0, len(siblings))
	removed := false
	for _, s := range siblings {
		if !removed && s == self {
			removed = true
			continue
		}
		out = append(out, s)
	}
	return out
}
