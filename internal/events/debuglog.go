package events

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

var debugLogFileName = filepath.Join(os.TempDir(), "window-namer.log")

// DebugLog writes events to a log file in the temp directory, mirroring
// where the tool logs when invoked from a tmux hook (no usable stderr).
// Disabled sinks are cheap no-ops so callers can wire one unconditionally.
type DebugLog struct {
	mu      sync.Mutex
	logger  *log.Logger
	file    *os.File
	enabled bool
}

// NewDebugLog opens the debug log file. When enabled is false, or the file
// cannot be opened, the sink discards events.
func NewDebugLog(enabled bool) *DebugLog {
	d := &DebugLog{enabled: enabled}
	if !enabled {
		d.logger = log.New(io.Discard, "", 0)
		return d
	}

	f, err := os.OpenFile(debugLogFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		d.enabled = false
		d.logger = log.New(io.Discard, "", 0)
		return d
	}
	d.file = f
	d.logger = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	return d
}

// Path returns the debug log file location.
func (d *DebugLog) Path() string { return debugLogFileName }

// Emit implements Sink.
func (d *DebugLog) Emit(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger.Printf("%s %s", e.Kind, e.Detail)
}

// Close closes the underlying file, if any.
func (d *DebugLog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file != nil {
		_ = d.file.Close()
		d.file = nil
	}
}

// Multi fans events out to several sinks.
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}
