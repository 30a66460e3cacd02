package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"podhaul/internal/device"
)

// The watch command reports removable media as it is attached, which is the
// usual prelude to picking a transfer destination.
func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch for removable storage being attached",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events := make(chan device.Event, 8)
			monitor := device.NewMonitor(logger)
			if err := monitor.Start(runCtx, events); err != nil {
				return fmt.Errorf("start device monitor: %w", err)
			}
			defer monitor.Stop()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Watching for removable storage (Ctrl-C to stop)...")
			for {
				select {
				case <-runCtx.Done():
					return nil
				case event := <-events:
					label := event.Label
					if label == "" {
						label = "unlabeled"
					}
					fmt.Fprintf(out, "%s: %s (%s)\n", event.Action, event.Node, label)
				}
			}
		},
	}
}
