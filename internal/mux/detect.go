package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// Detect auto-detects the active terminal multiplexer. The environment is
// checked first, then a running tmux server.
func Detect() (Multiplexer, error) {
	if os.Getenv("TMUX") != "" {
		return NewTmux(), nil
	}

	if tmuxPath, err := exec.LookPath("tmux"); err == nil && tmuxPath != "" {
		cmd := exec.Command("tmux", "list-sessions")
		if err := cmd.Run(); err == nil {
			return NewTmux(), nil
		}
	}

	return nil, fmt.Errorf("no supported terminal multiplexer detected (set $TMUX or install tmux)")
}

// FromName creates a Multiplexer by name.
func FromName(name string) (Multiplexer, error) {
	switch name {
	case "tmux":
		return NewTmux(), nil
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}
