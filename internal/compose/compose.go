// Package compose assembles final window labels from a pane's category and
// shortened directory: substitution rules, icon styling, and truncation.
package compose

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/events"
	"github.com/timvw/window-namer/internal/icons"
	"github.com/timvw/window-namer/internal/model"
)

// Composer builds window labels for one rename pass. Substitution rules
// are compiled once at construction; rules that fail to compile are
// reported to the sink and skipped, never failing the pass.
type Composer struct {
	cfg      *config.Config
	sink     events.Sink
	cmdRules []rule
	dirRules []rule
}

type rule struct {
	re   *regexp.Regexp
	repl string
}

// New compiles the configured substitution rule sets.
func New(cfg *config.Config, sink events.Sink) *Composer {
	return &Composer{
		cfg:      cfg,
		sink:     sink,
		cmdRules: compileRules(cfg.SubstituteSets, sink),
		dirRules: compileRules(cfg.DirSubstituteSets, sink),
	}
}

// Compose builds the final label for a window, bounded to the configured
// maximum length. directory is the already-shortened directory string for
// directory-named categories (ignored otherwise).
func (c *Composer) Compose(cat model.Category, directory string) string {
	var label string

	switch cat.Kind {
	case model.Shell, model.Ignored:
		label = applyRules(directory, c.dirRules)
	case model.DirProgram:
		prefix := c.programLabel(cat)
		label = prefix + ":" + applyRules(directory, c.dirRules)
	default:
		label = c.programLabel(cat)
	}

	return Truncate(label, c.cfg.MaxNameLen)
}

// programLabel renders the program part of a label: substituted command
// line, with the configured icon style applied.
func (c *Composer) programLabel(cat model.Category) string {
	s := cat.CommandLine
	if !c.cfg.ShowProgramArgs {
		s = cat.Program
	}
	s = applyRules(s, c.cmdRules)

	switch c.cfg.IconStyle {
	case config.IconStyleIcon:
		if glyph := icons.Lookup(cat.Program, c.cfg.CustomIcons); glyph != "" {
			return glyph
		}
		return s
	case config.IconStyleNameAndIcon:
		if glyph := icons.Lookup(cat.Program, c.cfg.CustomIcons); glyph != "" {
			return glyph + " " + s
		}
		return s
	default:
		return s
	}
}

// compileRules compiles a rule set, skipping broken rules with an event.
// Python-style backreferences (\1, \g<1>) are accepted and normalized to
// Go's ${1} form, since existing plugin configurations use them.
func compileRules(set []config.Rule, sink events.Sink) []rule {
	compiled := make([]rule, 0, len(set))
	for _, r := range set {
		if strings.TrimSpace(r.Pattern()) == "" {
			events.Emit(sink, events.KindRuleSkipped, "empty pattern")
			continue
		}
		re, err := regexp.Compile(r.Pattern())
		if err != nil {
			events.Emit(sink, events.KindRuleSkipped, "pattern %q: %v", r.Pattern(), err)
			continue
		}
		compiled = append(compiled, rule{re: re, repl: normalizeReplacement(r.Replacement())})
	}
	return compiled
}

// applyRules runs every rule in order over the current string, so rules
// compose: later rules see earlier rewrites.
func applyRules(s string, rules []rule) string {
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

var (
	pyNamedRef  = regexp.MustCompile(`\\g<(\d+)>`)
	pyNumberRef = regexp.MustCompile(`\\(\d+)`)
)

// normalizeReplacement converts \g<n> and \n backreferences to ${n}.
// The $${$1} template reads as: literal "$", "{", group 1, "}".
func normalizeReplacement(repl string) string {
	repl = pyNamedRef.ReplaceAllString(repl, `$${$1}`)
	return pyNumberRef.ReplaceAllString(repl, `$${$1}`)
}

// Truncate bounds s to max codepoints, never splitting a grapheme cluster:
// a cluster that would straddle the limit is dropped entirely, so icons
// and combined glyphs stay intact. No ellipsis is added.
func Truncate(s string, max int) string {
	if max <= 0 || countRunes(s) <= max {
		return s
	}

	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if used+len(runes) > max {
			break
		}
		b.WriteString(g.Str())
		used += len(runes)
	}
	return b.String()
}

func countRunes(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
