package cli

import "github.com/spf13/cobra"

var energyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Write a watt-hour value to the energy write target",
	RunE: func(cmd *cobra.Command, args []string) error {
		energyWh, err := cmd.Flags().GetFloat64("energy-wh")
		if err != nil {
			return err
		}
		return hns.Energy(cmd.Context(), energyWh)
	},
}

func init() {
	energyCmd.Flags().Float64("energy-wh", 0, "energy value in Wh")
	_ = energyCmd.MarkFlagRequired("energy-wh")
	rootCmd.AddCommand(energyCmd)
}
