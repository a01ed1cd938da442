// Package mux provides an abstraction over terminal multiplexers.
//
// The naming core has no I/O of its own: this package is the snapshot
// source (active pane per window) and the apply sink (rename-window plus
// the options that keep the name across restores).
package mux

import (
	"context"

	"github.com/timvw/window-namer/internal/model"
)

// Multiplexer abstracts the operations a rename pass needs.
// Implemented for tmux; in-memory fakes serve the tests.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// ActivePanes returns one snapshot per window of the current session:
	// the window's active pane.
	ActivePanes(ctx context.Context) ([]model.PaneSnapshot, error)

	// ApplyName renames a window and records the name so it survives
	// automatic-rename and session restores. Fire-and-forget from the
	// core's perspective; failures are the caller's to log.
	ApplyName(ctx context.Context, windowID, name string) error

	// WindowEnabled reports whether renaming is enabled for a window.
	// Unset means enabled.
	WindowEnabled(ctx context.Context, windowID string) bool
}
