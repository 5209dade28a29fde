package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Collect a fact every interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.collector()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.printer.Banner("--- 🚀 Automated Digital Fact Collector: ENGAGED ---")
			a.printer.Help("Press Ctrl+C to stop the collector.")

			if err := c.Run(ctx); err != nil {
				return err
			}
			if isSignalled(ctx, cmd.Context()) {
				a.printer.Plain("")
				a.printer.Warn("🛑 Collector stopped by user. Goodbye!")
			}
			return nil
		},
	}
	cmd.Flags().Duration("interval", 0, "time between cycles (default 30s)")
	cmd.Flags().Int("max-iterations", 0, "stop after this many cycles (0 runs until interrupted)")
	return cmd
}

// isSignalled reports whether ctx ended because of a signal rather than
// because its parent was cancelled.
func isSignalled(ctx, parent context.Context) bool {
	return ctx.Err() != nil && parent.Err() == nil
}
