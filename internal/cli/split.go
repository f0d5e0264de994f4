package cli

import "github.com/spf13/cobra"

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Simulate a cycle that crosses midnight and trigger an energy update",
	RunE: func(cmd *cobra.Command, args []string) error {
		energyWh, err := cmd.Flags().GetFloat64("energy-wh")
		if err != nil {
			return err
		}
		startISO, err := cmd.Flags().GetString("start-iso")
		if err != nil {
			return err
		}
		return hns.Split(cmd.Context(), energyWh, startISO)
	},
}

func init() {
	splitCmd.Flags().Float64("energy-wh", 0, "energy value in Wh")
	splitCmd.Flags().String("start-iso", "", "ISO start time (defaults to yesterday 23:50 local time)")
	_ = splitCmd.MarkFlagRequired("energy-wh")
	rootCmd.AddCommand(splitCmd)
}
