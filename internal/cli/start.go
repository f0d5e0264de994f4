package cli

import "github.com/spf13/cobra"

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a cycle (set status to the active state)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return hns.Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
