package events

import (
	"sync"
	"testing"
)

func TestEmitNilSinkDiscards(t *testing.T) {
	// Must not panic.
	Emit(nil, KindRenamed, "window %s", "@1")
}

func TestEmitFormatsDetail(t *testing.T) {
	var buf Buffer
	Emit(&buf, KindRenamed, "window %s -> %q", "@1", "alpha")

	got := buf.Events()
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Kind != KindRenamed {
		t.Errorf("Kind: got %q, want %q", got[0].Kind, KindRenamed)
	}
	if got[0].Detail != `window @1 -> "alpha"` {
		t.Errorf("Detail: got %q", got[0].Detail)
	}
	if got[0].TS.IsZero() {
		t.Error("TS: got zero time")
	}
}

func TestBufferDrainPreservesOrder(t *testing.T) {
	var buf Buffer
	Emit(&buf, KindConfigDefault, "first")
	Emit(&buf, KindRuleSkipped, "second")

	var out Buffer
	buf.Drain(&out)

	got := out.Events()
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Detail != "first" || got[1].Detail != "second" {
		t.Errorf("order: got %q then %q", got[0].Detail, got[1].Detail)
	}
	if len(buf.Events()) != 0 {
		t.Error("source buffer not emptied by Drain")
	}
}

func TestBufferConcurrentEmit(t *testing.T) {
	var buf Buffer
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				Emit(&buf, KindRenamed, "x")
			}
		}()
	}
	wg.Wait()

	if got := len(buf.Events()); got != 1000 {
		t.Errorf("got %d events, want 1000", got)
	}
}

func TestMultiFansOut(t *testing.T) {
	var a, b Buffer
	m := Multi{&a, nil, &b}
	Emit(m, KindRenamed, "hello")

	if len(a.Events()) != 1 || len(b.Events()) != 1 {
		t.Errorf("fan-out: got %d and %d events, want 1 and 1",
			len(a.Events()), len(b.Events()))
	}
}

func TestDisabledDebugLogDiscards(t *testing.T) {
	d := NewDebugLog(false)
	defer d.Close()

	// Must not panic or create state.
	d.Emit(Event{Kind: KindRenamed, Detail: "x"})
	if d.Path() == "" {
		t.Error("Path: got empty")
	}
}
