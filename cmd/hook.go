package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the tmux rename hook",
}

var hookEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Install the after-rename-window hook",
	Long: `Install a tmux hook that re-runs window-namer whenever a window is
renamed, and records manual renames so those windows are left alone.
Typically called once from tmux.conf:

  run-shell 'window-namer hook enable'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := getTmux()
		if err != nil {
			return err
		}
		return t.EnableRenameHook(cmd.Context())
	},
}

var hookDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Remove the after-rename-window hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := getTmux()
		if err != nil {
			return err
		}
		return t.DisableRenameHook(cmd.Context())
	},
}

var postRestoreCmd = &cobra.Command{
	Use:   "post-restore",
	Short: "Re-arm renaming after a session restore",
	Long: `Reconcile per-window state after a tool like tmux-resurrect recreates
a session: windows restored with automatic-rename on become managed again,
windows restored with a fixed name stay manual. Then reinstall the hook
and run one rename pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		t, err := getTmux()
		if err != nil {
			return err
		}
		if err := t.PostRestore(ctx); err != nil {
			return fmt.Errorf("post-restore: %w", err)
		}
		return runRenamePass(ctx)
	},
}

func init() {
	hookCmd.AddCommand(hookEnableCmd, hookDisableCmd)
	rootCmd.AddCommand(hookCmd, postRestoreCmd)
}
