package cli

import (
	"habackfill/internal/harness"

	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run a basic cycle + energy update scenario",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		energyWh, err := flags.GetFloat64("energy-wh")
		if err != nil {
			return err
		}
		durationSec, err := flags.GetInt64("duration-sec")
		if err != nil {
			return err
		}
		startISO, err := flags.GetString("start-iso")
		if err != nil {
			return err
		}
		runInit, err := flags.GetBool("init")
		if err != nil {
			return err
		}
		return hns.Scenario(cmd.Context(), harness.ScenarioOptions{
			EnergyWh:    energyWh,
			DurationSec: durationSec,
			StartISO:    startISO,
			Init:        runInit,
		})
	},
}

func init() {
	scenarioCmd.Flags().Float64("energy-wh", 0, "energy value in Wh")
	scenarioCmd.Flags().Int64("duration-sec", 1800, "duration of the simulated cycle in seconds")
	scenarioCmd.Flags().String("start-iso", "", "ISO start time (overrides --duration-sec)")
	scenarioCmd.Flags().Bool("init", false, "reset helpers before running the scenario")
	_ = scenarioCmd.MarkFlagRequired("energy-wh")
	rootCmd.AddCommand(scenarioCmd)
}
