package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll and print the tracked entity states until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, err := cmd.Flags().GetDuration("interval")
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return hns.Watch(ctx, interval)
	},
}

func init() {
	watchCmd.Flags().Duration("interval", 10*time.Second, "poll interval")
	rootCmd.AddCommand(watchCmd)
}
