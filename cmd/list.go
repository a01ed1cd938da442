package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/window-namer/internal/renamer"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show computed names without applying them",
	Long: `List every window in the attached session with its current name and
the name a rename pass would give it. Nothing is renamed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := getTmux()
		if err != nil {
			return err
		}

		cfg, sink, cleanup := loadConfig(ctx, t)
		defer cleanup()

		panes, err := t.ActivePanes(ctx)
		if err != nil {
			return err
		}

		r := &renamer.Renamer{Config: cfg, Sink: sink}
		names := r.Rename(ctx, panes)

		current := make(map[string]windowInfo, len(panes))
		for _, p := range panes {
			current[p.WindowID] = windowInfo{index: p.WindowIndex, name: p.WindowName}
		}

		type entry struct {
			WindowID string `json:"window_id"`
			Index    int    `json:"index"`
			Current  string `json:"current"`
			Computed string `json:"computed"`
			Enabled  bool   `json:"enabled"`
		}
		out := make([]entry, 0, len(names))
		for _, n := range names {
			info := current[n.WindowID]
			out = append(out, entry{
				WindowID: n.WindowID,
				Index:    info.index,
				Current:  info.name,
				Computed: n.Text,
				Enabled:  t.WindowEnabled(ctx, n.WindowID),
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

type windowInfo struct {
	index int
	name  string
}

func init() {
	rootCmd.AddCommand(listCmd)
}
