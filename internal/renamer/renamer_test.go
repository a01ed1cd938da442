package renamer

import (
	"context"
	"testing"

	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/events"
	"github.com/timvw/window-namer/internal/model"
)

func pass(t *testing.T, cfg *config.Config, panes []model.PaneSnapshot) map[string]string {
	t.Helper()
	r := &Renamer{Config: cfg, Sink: events.Nop{}}
	names := r.Rename(context.Background(), panes)
	if len(names) != len(panes) {
		t.Fatalf("got %d names for %d panes", len(names), len(panes))
	}
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n.WindowID] = n.Text
	}
	return out
}

func TestRenameDisambiguatesShellDirectories(t *testing.T) {
	cfg := config.Defaults()
	panes := []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "zsh", Directory: "/home/user/projects/alpha"},
		{WindowID: "@2", CommandLine: "zsh", Directory: "/home/user/work/alpha"},
	}

	got := pass(t, cfg, panes)
	if got["@1"] != "projects/alpha" {
		t.Errorf("@1: got %q, want %q", got["@1"], "projects/alpha")
	}
	if got["@2"] != "work/alpha" {
		t.Errorf("@2: got %q, want %q", got["@2"], "work/alpha")
	}
}

func TestRenameShellAndDirProgramShareSiblingSet(t *testing.T) {
	cfg := config.Defaults()
	panes := []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "nvim", Directory: "/home/user/code/web"},
		{WindowID: "@2", CommandLine: "zsh", Directory: "/home/user/docs/web"},
	}

	got := pass(t, cfg, panes)
	if got["@1"] != "nvim:code/web" {
		t.Errorf("@1: got %q, want %q", got["@1"], "nvim:code/web")
	}
	if got["@2"] != "docs/web" {
		t.Errorf("@2: got %q, want %q", got["@2"], "docs/web")
	}
}

func TestRenameRegularProgramIgnoresDirectory(t *testing.T) {
	cfg := config.Defaults()
	panes := []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "/usr/bin/python3 script.py", Directory: "/home/user"},
	}

	got := pass(t, cfg, panes)
	// The built-in /bin remover rule strips the path prefix.
	if got["@1"] != "python3 script.py" {
		t.Errorf("@1: got %q, want %q", got["@1"], "python3 script.py")
	}
}

func TestRenameTruncatesToMaxNameLen(t *testing.T) {
	cfg := config.Defaults()
	cfg.MaxNameLen = 8
	panes := []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "zsh", Directory: "/tmp/a-rather-long-directory"},
	}

	got := pass(t, cfg, panes)
	if got["@1"] != "a-rather" {
		t.Errorf("@1: got %q, want %q", got["@1"], "a-rather")
	}
}

func TestRenameIdenticalDirectoriesKeepShortForm(t *testing.T) {
	cfg := config.Defaults()
	panes := []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "zsh", Directory: "/home/user/projects/alpha"},
		{WindowID: "@2", CommandLine: "zsh", Directory: "/home/user/projects/alpha"},
	}

	got := pass(t, cfg, panes)
	if got["@1"] != "alpha" || got["@2"] != "alpha" {
		t.Errorf("got %q and %q, want both %q", got["@1"], got["@2"], "alpha")
	}
}

func TestRenameEmptyCommandLineFallsBackToShell(t *testing.T) {
	cfg := config.Defaults()
	var buf events.Buffer
	r := &Renamer{Config: cfg, Sink: &buf}

	names := r.Rename(context.Background(), []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "", Directory: "/srv/data"},
	})

	if names[0].Text != "data" {
		t.Errorf("got %q, want %q", names[0].Text, "data")
	}

	fallback := false
	for _, e := range buf.Events() {
		if e.Kind == events.KindClassifyFallback {
			fallback = true
		}
	}
	if !fallback {
		t.Error("expected a classify_fallback event")
	}
}

func TestRenameUseTilde(t *testing.T) {
	t.Setenv("HOME", "/home/user")

	cfg := config.Defaults()
	cfg.UseTilde = true
	panes := []model.PaneSnapshot{
		{WindowID: "@1", CommandLine: "zsh", Directory: "/home/user"},
		{WindowID: "@2", CommandLine: "zsh", Directory: "/etc/alpha"},
	}

	got := pass(t, cfg, panes)
	if got["@1"] != "~" {
		t.Errorf("@1: got %q, want %q", got["@1"], "~")
	}
	if got["@2"] != "alpha" {
		t.Errorf("@2: got %q, want %q", got["@2"], "alpha")
	}
}

func TestRenamePreservesInputOrder(t *testing.T) {
	cfg := config.Defaults()
	panes := []model.PaneSnapshot{
		{WindowID: "@3", CommandLine: "zsh", Directory: "/a"},
		{WindowID: "@1", CommandLine: "zsh", Directory: "/b"},
		{WindowID: "@2", CommandLine: "htop", Directory: "/c"},
	}

	r := &Renamer{Config: cfg, Sink: events.Nop{}}
	names := r.Rename(context.Background(), panes)

	want := []string{"@3", "@1", "@2"}
	for i, n := range names {
		if n.WindowID != want[i] {
			t.Errorf("position %d: got %q, want %q", i, n.WindowID, want[i])
		}
	}
}
