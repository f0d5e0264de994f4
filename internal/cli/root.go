// Package cli wires the habackfill command tree. Configuration is
// resolved once per invocation with flag > environment > default
// precedence before any subcommand runs.
package cli

import (
	"log/slog"
	"time"

	"habackfill/internal/config"
	"habackfill/internal/harness"
	"habackfill/internal/util/logutil"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
	hns    *harness.Harness
)

var rootCmd = &cobra.Command{
	Use:   "habackfill",
	Short: "Test harness for the Energy Backfill automation (Home Assistant REST API)",
	Long: `habackfill drives a Home Assistant instance over its REST API to
simulate the device and sensor state transitions the Energy Backfill
automation reacts to: cycle start/end, energy updates and cycles that
straddle local midnight.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return setup(cmd)
	},
}

// Execute runs the command tree and returns the failure, if any, for
// main to map onto an exit code.
func Execute() error {
	return rootCmd.Execute()
}

// flagKeys maps viper config keys to the persistent flag carrying them.
var flagKeys = map[string]string{
	"base_url":              "base-url",
	"token":                 "token",
	"energy_sensor":         "energy-sensor",
	"energy_write_entity":   "energy-write-entity",
	"status_entity":         "status-entity",
	"lifetime_helper":       "lifetime-helper",
	"cycle_start_helper":    "cycle-start-helper",
	"daily_active_helper":   "daily-active-helper",
	"durations_helper":      "durations-helper",
	"last_processed_helper": "last-processed-helper",
	"active_state":          "active-state",
	"inactive_state":        "inactive-state",
	"request_timeout":       "request-timeout",
	"log_level":             "log-level",
}

func setup(cmd *cobra.Command) error {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix("ha")
	v.AutomaticEnv()

	flags := cmd.Root().PersistentFlags()
	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	logger = logutil.NewLogger(cfg.LogLevel)
	slog.SetDefault(logutil.NewSlogBridge(logger))
	safePrintConfig(*cfg)

	hns = harness.New(cfg, harness.NewClient(cfg, logger), logger, cmd.OutOrStdout())
	return nil
}

func safePrintConfig(c config.Config) {
	c.Token = "*redacted*"
	slog.Debug("using", "config", c)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("base-url", "", "Home Assistant URL")
	pf.String("token", "", "long-lived access token")
	pf.String("energy-sensor", "sensor.test_energy_yesterday", "energy yesterday sensor entity (automation input)")
	pf.String("energy-write-entity", "", "entity to write for energy updates (defaults to the energy sensor)")
	pf.String("status-entity", "input_select.test_status", "status entity for active/inactive changes")
	pf.String("lifetime-helper", "input_number.test_lifetime_energy", "input_number for lifetime kWh")
	pf.String("cycle-start-helper", "input_datetime.test_cycle_start", "input_datetime for cycle start")
	pf.String("daily-active-helper", "input_number.test_daily_active_seconds", "input_number for daily active seconds")
	pf.String("durations-helper", "input_text.test_cycle_durations", "input_text for JSON durations")
	pf.String("last-processed-helper", "input_text.test_last_processed_date", "input_text for last processed date")
	pf.String("active-state", "running", "state treated as active")
	pf.String("inactive-state", "off", "state treated as inactive")
	pf.Duration("request-timeout", 30*time.Second, "per-request HTTP timeout")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
}
