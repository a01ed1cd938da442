package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/window-namer/internal/mux"
)

// Version is injected at build time via -ldflags.
var Version = "dev"

var (
	// Global flags.
	flagMux     string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "window-namer",
	Short: "Name tmux windows after what is running in them",
	Long: `window-namer derives a short, unambiguous name for every window in the
attached tmux session from the active pane's program and working
directory, and applies it via rename-window.

Directory-named windows (shells and directory-aware programs such as
editors) get the shortest path suffix that still tells them apart from
every other such window in the session.

Invoked with no subcommand it runs one rename pass — this is the entry
point tmux hooks call.`,
	Version: Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRenamePass(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMux, "mux", envOrDefault("WINDOW_NAMER_MUX", ""), "terminal multiplexer: tmux (default: auto-detect)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "mirror events to stderr")
}

// getMultiplexer returns the configured or auto-detected multiplexer.
func getMultiplexer() (mux.Multiplexer, error) {
	if flagMux != "" {
		return mux.FromName(flagMux)
	}
	return mux.Detect()
}

// getTmux returns the tmux backend directly, for commands that need the
// option store and hook management beyond the Multiplexer interface.
func getTmux() (*mux.Tmux, error) {
	m, err := getMultiplexer()
	if err != nil {
		return nil, err
	}
	if t, ok := m.(*mux.Tmux); ok {
		return t, nil
	}
	return mux.NewTmux(), nil
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
