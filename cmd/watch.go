package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/window-namer/internal/watch"
)

var (
	flagWatchInterval  time.Duration
	flagWatchAutoApply bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Interactive view of current vs computed window names",
	Long: `Open a terminal UI listing every window in the attached session with its
current name, the name a rename pass would compute, and whether renaming
is enabled for it. Names refresh on an interval; with --apply each refresh
also pushes the computed names, turning the UI into a live rename loop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := getTmux()
		if err != nil {
			return err
		}

		cfg, sink, cleanup := loadConfig(ctx, t)
		defer cleanup()

		tui := &watch.TUI{
			Mux:             t,
			Config:          cfg,
			Sink:            sink,
			RefreshInterval: flagWatchInterval,
			AutoApply:       flagWatchAutoApply,
		}
		return tui.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 2*time.Second, "refresh interval (0 disables auto-refresh)")
	watchCmd.Flags().BoolVar(&flagWatchAutoApply, "apply", false, "apply computed names on every refresh")
	rootCmd.AddCommand(watchCmd)
}
