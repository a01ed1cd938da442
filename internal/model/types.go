package model

// PaneSnapshot is one active pane, captured at the start of a rename pass.
// Snapshots are produced by the mux package and are read-only to the core.
type PaneSnapshot struct {
	// WindowID is the tmux window identifier (e.g., "@3").
	WindowID string `json:"window_id"`
	// WindowIndex is the window's position in the session.
	WindowIndex int `json:"window_index"`
	// WindowName is the window's current display name.
	WindowName string `json:"window_name"`
	// Directory is the pane's working directory (absolute path).
	Directory string `json:"directory"`
	// CommandLine is the full invocation of the pane's foreground process,
	// including arguments.
	CommandLine string `json:"command_line"`
	// PID is the pane's root shell process ID.
	PID int `json:"pid"`
	// ShellLoginPrefix is true when the leaf process name begins with "-",
	// marking a login shell. The marker is stripped before classification.
	ShellLoginPrefix bool `json:"shell_login_prefix,omitempty"`
}

// CategoryKind partitions pane processes for naming purposes.
type CategoryKind int

const (
	// Shell panes are named by their working directory alone.
	Shell CategoryKind = iota
	// Ignored panes are treated as if the process were absent; the window
	// falls back to directory naming.
	Ignored
	// DirProgram panes show the program name alongside the directory.
	DirProgram
	// RegularProgram panes show the program name (and optionally args).
	RegularProgram
)

func (k CategoryKind) String() string {
	switch k {
	case Shell:
		return "shell"
	case Ignored:
		return "ignored"
	case DirProgram:
		return "dir_program"
	case RegularProgram:
		return "regular_program"
	default:
		return "unknown"
	}
}

// Category is the classification of a single pane's process.
type Category struct {
	Kind CategoryKind `json:"kind"`
	// Program is the basename of the running program. Empty for Shell.
	Program string `json:"program,omitempty"`
	// Args is the remainder of the command line after the program token.
	Args string `json:"args,omitempty"`
	// CommandLine is the original invocation with the login-shell marker
	// stripped. Substitution rules run against this string, so rules like
	// "^(/usr)?/bin/(.+)" can see the full program path.
	CommandLine string `json:"command_line,omitempty"`
	// Directory is set for Shell and DirProgram (and Ignored fallback).
	Directory string `json:"directory,omitempty"`
}

// UsesDirectory reports whether the category is named by its directory and
// therefore participates in suffix disambiguation.
func (c Category) UsesDirectory() bool {
	return c.Kind == Shell || c.Kind == DirProgram || c.Kind == Ignored
}

// WindowName is one computed result of a rename pass.
type WindowName struct {
	WindowID string `json:"window_id"`
	Text     string `json:"text"`
}
