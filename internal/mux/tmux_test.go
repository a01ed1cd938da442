package mux

import (
	"testing"
)

func noResolve(int) (string, bool) { return "", false }

func TestParsePanes(t *testing.T) {
	out := "@1\t0\tzsh\t1\t100\tzsh\t/home/user\n" +
		"@1\t0\tzsh\t0\t101\tnvim\t/home/user/code\n" +
		"@2\t1\teditor\t1\t102\tnvim\t/home/user/code\n"

	panes := parsePanes(out, noResolve)
	if len(panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(panes))
	}

	first := panes[0]
	if first.WindowID != "@1" || first.WindowIndex != 0 || first.WindowName != "zsh" {
		t.Errorf("first window: got %+v", first)
	}
	if first.PID != 100 || first.CommandLine != "zsh" || first.Directory != "/home/user" {
		t.Errorf("first pane fields: got %+v", first)
	}

	second := panes[1]
	if second.WindowID != "@2" || second.WindowIndex != 1 {
		t.Errorf("second window: got %+v", second)
	}
}

func TestParsePanesResolverOverridesCommand(t *testing.T) {
	out := "@1\t0\tzsh\t1\t100\tzsh\t/home/user\n"

	resolve := func(pid int) (string, bool) {
		if pid != 100 {
			t.Errorf("resolve called with pid %d, want 100", pid)
		}
		return "nvim main.go", true
	}

	panes := parsePanes(out, resolve)
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if panes[0].CommandLine != "nvim main.go" {
		t.Errorf("CommandLine: got %q, want %q", panes[0].CommandLine, "nvim main.go")
	}
}

func TestParsePanesLoginShellMarker(t *testing.T) {
	out := "@1\t0\tbash\t1\t100\t-bash\t/home/user\n"

	panes := parsePanes(out, noResolve)
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if !panes[0].ShellLoginPrefix {
		t.Error("ShellLoginPrefix: got false, want true")
	}
	if panes[0].CommandLine != "-bash" {
		t.Errorf("CommandLine: got %q, want %q", panes[0].CommandLine, "-bash")
	}
}

func TestParsePanesMalformedLines(t *testing.T) {
	out := "garbage line without tabs\n" +
		"@1\t0\tzsh\t1\t100\tzsh\t/home/user\n" +
		"\n"

	panes := parsePanes(out, noResolve)
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
}

func TestParsePanesDirectoryWithTabsKeptWhole(t *testing.T) {
	// SplitN caps at 7 fields, so a path containing a tab stays intact.
	out := "@1\t0\tzsh\t1\t100\tzsh\t/home/user/odd\tdir\n"

	panes := parsePanes(out, noResolve)
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if panes[0].Directory != "/home/user/odd\tdir" {
		t.Errorf("Directory: got %q", panes[0].Directory)
	}
}

func TestFromName(t *testing.T) {
	if _, err := FromName("tmux"); err != nil {
		t.Errorf("FromName(tmux): unexpected error %v", err)
	}
	if _, err := FromName("screen"); err == nil {
		t.Error("FromName(screen): expected an error")
	}
}
