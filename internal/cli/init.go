package cli

import "github.com/spf13/cobra"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Reset the helper entities to a clean baseline",
	RunE: func(cmd *cobra.Command, args []string) error {
		var energyWh *float64
		if cmd.Flags().Changed("energy-wh") {
			value, err := cmd.Flags().GetFloat64("energy-wh")
			if err != nil {
				return err
			}
			energyWh = &value
		}
		return hns.Init(cmd.Context(), energyWh)
	},
}

func init() {
	initCmd.Flags().Float64("energy-wh", 0, "initial energy value in Wh (omit to leave the target untouched)")
	rootCmd.AddCommand(initCmd)
}
