// Package proc resolves the foreground program of a pane from its shell
// PID. Process enumeration goes through go-ps (one cross-platform
// snapshot, no subprocess per pane); only the selected leaf needs a
// single ps call to recover its full argv, which go-ps does not expose.
package proc

import (
	"os/exec"
	"sort"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// selfExecutable is never reported as a pane program: a hook-triggered
// rename pass would otherwise see itself running in the active pane.
const selfExecutable = "window-namer"

// Resolver finds pane foreground processes. The zero value is usable;
// argsFn is replaceable for tests.
type Resolver struct {
	procs  func() ([]ps.Process, error)
	argsFn func(pid int) string
}

// NewResolver returns a Resolver backed by the live process table.
func NewResolver() *Resolver {
	return &Resolver{procs: ps.Processes, argsFn: psArgs}
}

// CommandLine returns the full command line of the pane's foreground
// process: the oldest living child of the pane's shell PID. Returns
// ("", false) when the shell has no children (an idle shell pane) or the
// process table cannot be read — callers fall back to the multiplexer's
// own notion of the current command.
func (r *Resolver) CommandLine(panePID int) (string, bool) {
	if panePID <= 0 {
		return "", false
	}

	procs, err := r.procs()
	if err != nil {
		return "", false
	}

	var children []ps.Process
	for _, p := range procs {
		if p.PPid() != panePID {
			continue
		}
		if p.Executable() == selfExecutable {
			continue
		}
		children = append(children, p)
	}
	if len(children) == 0 {
		return "", false
	}

	// Oldest child wins: lowest PID approximates process start order and
	// matches which process owns the terminal in practice.
	sort.Slice(children, func(i, j int) bool { return children[i].Pid() < children[j].Pid() })
	leaf := children[0]

	if args := r.argsFn(leaf.Pid()); args != "" {
		return args, true
	}
	return leaf.Executable(), true
}

// psArgs fetches the full argv of one process. Best-effort: an empty
// string on any failure.
func psArgs(pid int) string {
	out, err := exec.Command("ps", "-o", "args=", "-p", strconv.Itoa(pid)).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
