package mux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/model"
	"github.com/timvw/window-namer/internal/proc"
)

// enabledOption is the per-window toggle coupled to user renames: the
// after-rename-window hook clears it when the user names a window by hand.
const enabledOption = config.OptionPrefix + "enabled"

// hookIndex keeps our after-rename-window hook out of the way of other
// plugins' hook slots.
const hookIndex = 8921

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct {
	resolver *proc.Resolver
}

// NewTmux creates a new tmux multiplexer.
func NewTmux() *Tmux {
	return &Tmux{resolver: proc.NewResolver()}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// ActivePanes returns the active pane of every window in the attached
// session. The command line is resolved from the pane PID's children;
// tmux's pane_current_command (executable name only) is the fallback for
// idle shells and resolution failures.
func (t *Tmux) ActivePanes(ctx context.Context) ([]model.PaneSnapshot, error) {
	format := "#{window_id}\t#{window_index}\t#{window_name}\t#{pane_active}\t#{pane_pid}\t#{pane_current_command}\t#{pane_current_path}"
	out, err := t.run(ctx, "list-panes", "-s", "-F", format)
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}

	return parsePanes(out, t.resolver.CommandLine), nil
}

// parsePanes turns list-panes output into snapshots, keeping only each
// window's active pane. resolve maps a pane PID to its foreground argv;
// tmux's pane_current_command (executable name only) is the fallback for
// idle shells and resolution failures.
func parsePanes(out string, resolve func(pid int) (string, bool)) []model.PaneSnapshot {
	var panes []model.PaneSnapshot
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 7)
		if len(parts) != 7 {
			continue
		}
		if parts[3] != "1" {
			continue // only the active pane represents a window
		}

		index, _ := strconv.Atoi(parts[1])
		pid, _ := strconv.Atoi(parts[4])

		snapshot := model.PaneSnapshot{
			WindowID:    parts[0],
			WindowIndex: index,
			WindowName:  parts[2],
			PID:         pid,
			CommandLine: parts[5],
			Directory:   parts[6],
		}

		if cmd, ok := resolve(pid); ok {
			snapshot.CommandLine = cmd
		}
		if strings.HasPrefix(snapshot.CommandLine, "-") {
			snapshot.ShellLoginPrefix = true
		}

		panes = append(panes, snapshot)
	}

	return panes
}

// ApplyName renames a window and pins the name: automatic-rename-format is
// set to the same text and automatic-rename turned on, so tmux-resurrect
// restores reproduce it.
func (t *Tmux) ApplyName(ctx context.Context, windowID, name string) error {
	if _, err := t.run(ctx, "rename-window", "-t", windowID, name); err != nil {
		return fmt.Errorf("tmux rename-window -t %s: %w", windowID, err)
	}
	if err := t.SetWindowOption(ctx, windowID, "automatic-rename-format", name); err != nil {
		return err
	}
	return t.SetWindowOption(ctx, windowID, "automatic-rename", "on")
}

// SetManualName gives a window a user-chosen name and marks it manual so
// rename passes leave it alone, the same state the rename hook records when
// the user runs rename-window themselves.
func (t *Tmux) SetManualName(ctx context.Context, windowID, name string) error {
	if _, err := t.run(ctx, "rename-window", "-t", windowID, name); err != nil {
		return fmt.Errorf("tmux rename-window -t %s: %w", windowID, err)
	}
	return t.SetWindowOption(ctx, windowID, enabledOption, "0")
}

// SetWindowEnabled flips the per-window enabled toggle.
func (t *Tmux) SetWindowEnabled(ctx context.Context, windowID string, enabled bool) error {
	value := "0"
	if enabled {
		value = "1"
	}
	return t.SetWindowOption(ctx, windowID, enabledOption, value)
}

// SelectWindow focuses the given window in the attached client.
func (t *Tmux) SelectWindow(ctx context.Context, windowID string) error {
	_, err := t.run(ctx, "select-window", "-t", windowID)
	return err
}

// WindowEnabled reports the per-window enabled toggle. Unset means enabled.
func (t *Tmux) WindowEnabled(ctx context.Context, windowID string) bool {
	raw, ok, err := t.ShowWindowOption(ctx, windowID, enabledOption)
	if err != nil || !ok {
		return true
	}
	return strings.TrimSpace(raw) != "0"
}

// ShowOption returns a global option value and whether it is set.
// Satisfies config.OptionStore.
func (t *Tmux) ShowOption(ctx context.Context, name string) (string, bool, error) {
	out, err := t.run(ctx, "show-option", "-gqv", name)
	if err != nil {
		return "", false, err
	}
	value := strings.TrimRight(out, "\n")
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// SetOption sets a global option.
func (t *Tmux) SetOption(ctx context.Context, name, value string) error {
	_, err := t.run(ctx, "set-option", "-g", name, value)
	return err
}

// ShowWindowOption returns a window option value and whether it is set.
func (t *Tmux) ShowWindowOption(ctx context.Context, windowID, name string) (string, bool, error) {
	out, err := t.run(ctx, "show-option", "-wqv", "-t", windowID, name)
	if err != nil {
		return "", false, err
	}
	value := strings.TrimRight(out, "\n")
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// SetWindowOption sets a window option quietly.
func (t *Tmux) SetWindowOption(ctx context.Context, windowID, name, value string) error {
	_, err := t.run(ctx, "set-option", "-wq", "-t", windowID, name, value)
	return err
}

// EnableRenameHook installs the after-rename-window hook. A user rename
// (non-empty window_name) flips the window's enabled option off; clearing
// the name flips it back on and re-runs the namer.
func (t *Tmux) EnableRenameHook(ctx context.Context) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	exe = strings.ReplaceAll(exe, "'", `'\''`)

	hook := fmt.Sprintf(
		`if-shell "[ #{n:window_name} -gt 0 ]" "set -w %s 0" "set -w %s 1; run-shell '%s'"`,
		enabledOption, enabledOption, exe)
	_, err = t.run(ctx, "set-hook", "-g", fmt.Sprintf("after-rename-window[%d]", hookIndex), hook)
	return err
}

// DisableRenameHook removes the after-rename-window hook.
func (t *Tmux) DisableRenameHook(ctx context.Context) error {
	_, err := t.run(ctx, "set-hook", "-ug", fmt.Sprintf("after-rename-window[%d]", hookIndex))
	return err
}

// PostRestore re-derives the per-window enabled option from
// automatic-rename after a session restore, then reinstalls the hook.
// tmux-resurrect remembers automatic-rename, not our option.
func (t *Tmux) PostRestore(ctx context.Context) error {
	out, err := t.run(ctx, "list-windows", "-F", "#{window_id}")
	if err != nil {
		return fmt.Errorf("tmux list-windows: %w", err)
	}

	for _, windowID := range strings.Fields(out) {
		raw, ok, err := t.ShowWindowOption(ctx, windowID, "automatic-rename")
		if err != nil {
			continue
		}
		enabled := "1"
		if ok && strings.TrimSpace(raw) != "on" {
			enabled = "0"
		}
		if err := t.SetWindowOption(ctx, windowID, enabledOption, enabled); err != nil {
			continue
		}
	}

	return t.EnableRenameHook(ctx)
}

// run executes a tmux command and returns its stdout.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
