package cli

import "github.com/spf13/cobra"

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End a cycle (set status to the inactive state)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var durationSec *int64
		if cmd.Flags().Changed("duration-sec") {
			value, err := cmd.Flags().GetInt64("duration-sec")
			if err != nil {
				return err
			}
			durationSec = &value
		}
		return hns.End(cmd.Context(), durationSec)
	},
}

func init() {
	endCmd.Flags().Int64("duration-sec", 0, "rewrite cycle start to now minus this many seconds before ending")
	rootCmd.AddCommand(endCmd)
}
