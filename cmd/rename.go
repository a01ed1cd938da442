package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/window-namer/internal/config"
	"github.com/timvw/window-namer/internal/events"
	"github.com/timvw/window-namer/internal/mux"
	telem "github.com/timvw/window-namer/internal/otel"
	"github.com/timvw/window-namer/internal/renamer"
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Run one rename pass over the current session",
	Long: `Compute and apply a name for every window in the attached session.

Equivalent to invoking window-namer with no subcommand. Windows whose
` + config.OptionPrefix + `enabled option is 0 (set by the rename hook when the user
names a window by hand) keep their current name, but still count as
siblings when directories are disambiguated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRenamePass(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}

// runRenamePass is the hook entry point: guard against re-entry, load
// config, compute names, apply them.
func runRenamePass(ctx context.Context) error {
	t, err := getTmux()
	if err != nil {
		return err
	}

	// Re-entry guard: our own rename-window calls fire the very hook that
	// invokes us. The hook is disabled for the duration of the pass and
	// the running flag catches racing invocations.
	runningOption := config.OptionPrefix + "running"
	if raw, ok, err := t.ShowOption(ctx, runningOption); err == nil && ok && raw == "1" {
		return nil
	}
	if err := t.SetOption(ctx, runningOption, "1"); err != nil {
		return fmt.Errorf("set running guard: %w", err)
	}
	_ = t.DisableRenameHook(ctx)
	defer func() {
		_ = t.EnableRenameHook(ctx)
		_ = t.SetOption(ctx, runningOption, "0")
	}()

	cfg, sink, cleanup := loadConfig(ctx, t)
	defer cleanup()

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.Config{Endpoint: cfg.OTELEndpoint, Headers: cfg.OTELHeaders})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: otel init failed: %v\n", err)
	}
	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
		defer tel.Shutdown(ctx)
	}

	start := time.Now()

	panes, err := t.ActivePanes(ctx)
	if err != nil {
		return fmt.Errorf("snapshot session panes: %w", err)
	}

	r := &renamer.Renamer{Config: cfg, Sink: sink, Metrics: metrics}
	names := r.Rename(ctx, panes)

	for _, n := range names {
		if !t.WindowEnabled(ctx, n.WindowID) {
			events.Emit(sink, events.KindWindowSkipped, "window %s: renaming disabled", n.WindowID)
			metrics.RecordWindowSkipped(ctx)
			continue
		}
		if err := t.ApplyName(ctx, n.WindowID, n.Text); err != nil {
			fmt.Fprintf(os.Stderr, "warning: apply %s: %v\n", n.WindowID, err)
			continue
		}
		metrics.RecordWindowApplied(ctx)
	}

	metrics.RecordPassDuration(ctx, time.Since(start))
	return nil
}

// loadConfig loads configuration and builds the event sink it implies.
// Events raised during the load itself are buffered and replayed once the
// sink exists.
func loadConfig(ctx context.Context, store *mux.Tmux) (*config.Config, events.Sink, func()) {
	var buf events.Buffer
	cfg := config.Load(ctx, store, &buf)

	debugLog := events.NewDebugLog(cfg.DebugEnabled())
	sink := events.Sink(debugLog)
	if flagVerbose {
		sink = events.Multi{debugLog, stderrSink{}}
	}
	buf.Drain(sink)

	return cfg, sink, debugLog.Close
}

// stderrSink mirrors events to stderr for interactive use.
type stderrSink struct{}

func (stderrSink) Emit(e events.Event) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", e.Kind, e.Detail)
}
