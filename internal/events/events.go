// Package events carries structured side-channel events out of the naming
// core. The core never logs directly; it emits events to a Sink and the
// caller decides where they go (debug log file, stderr, nowhere).
package events

import (
	"fmt"
	"sync"
	"time"
)

// Event kinds emitted by the core.
const (
	// KindConfigDefault: a configured option failed validation and was
	// replaced by its documented default.
	KindConfigDefault = "config_default"
	// KindRuleSkipped: a substitution rule failed to compile and was
	// skipped for this pass.
	KindRuleSkipped = "rule_skipped"
	// KindClassifyFallback: a malformed command line fell back to the
	// shell classification.
	KindClassifyFallback = "classify_fallback"
	// KindWindowSkipped: a window was excluded from renaming (disabled
	// via window option).
	KindWindowSkipped = "window_skipped"
	// KindRenamed: a window name was computed and handed to the sink.
	KindRenamed = "renamed"
)

// Event is one structured occurrence inside a rename pass.
type Event struct {
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
	TS     time.Time `json:"ts"`
}

// Sink receives events. Implementations must tolerate concurrent Emit
// calls and must never fail the caller.
type Sink interface {
	Emit(e Event)
}

// Emit constructs and delivers an event to sink. A nil sink discards.
func Emit(sink Sink, kind, format string, args ...any) {
	if sink == nil {
		return
	}
	sink.Emit(Event{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
		TS:     time.Now(),
	})
}

// Nop is a Sink that discards all events.
type Nop struct{}

func (Nop) Emit(Event) {}

// Buffer collects events in memory. Used while loading configuration,
// before the configured sink exists; buffered events are then replayed.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

func (b *Buffer) Emit(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

// Drain replays all buffered events into sink and empties the buffer.
func (b *Buffer) Drain(sink Sink) {
	b.mu.Lock()
	drained := b.events
	b.events = nil
	b.mu.Unlock()
	for _, e := range drained {
		if sink != nil {
			sink.Emit(e)
		}
	}
}

// Events returns a copy of the buffered events.
func (b *Buffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event(nil), b.events...)
}
