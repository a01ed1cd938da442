package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timvw/window-namer/internal/classify"
	"github.com/timvw/window-namer/internal/compose"
	"github.com/timvw/window-namer/internal/events"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print raw pane commands next to their composed names",
	Long: `For each pane show the command line tmux reports, the category it
classifies as, and the name the composer produces for it in isolation.
Useful when tuning substitute_sets: the left column is exactly the input
your patterns run against.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := getTmux()
		if err != nil {
			return err
		}

		cfg, _, cleanup := loadConfig(ctx, t)
		defer cleanup()

		panes, err := t.ActivePanes(ctx)
		if err != nil {
			return err
		}

		composer := compose.New(cfg, events.Nop{})

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COMMAND\tCATEGORY\tNAME")
		for _, p := range panes {
			cat := classify.Classify(p.CommandLine, p.Directory, cfg)
			name := composer.Compose(cat, cat.Directory)
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.CommandLine, cat.Kind, name)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}
