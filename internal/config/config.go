package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config is the merged harness configuration, resolved once at startup.
// Precedence is flag > environment variable > default.
type Config struct {
	LogLevel zapcore.Level

	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`

	EnergySensor        string `mapstructure:"energy_sensor"`
	EnergyWriteEntity   string `mapstructure:"energy_write_entity"`
	StatusEntity        string `mapstructure:"status_entity"`
	LifetimeHelper      string `mapstructure:"lifetime_helper"`
	CycleStartHelper    string `mapstructure:"cycle_start_helper"`
	DailyActiveHelper   string `mapstructure:"daily_active_helper"`
	DurationsHelper     string `mapstructure:"durations_helper"`
	LastProcessedHelper string `mapstructure:"last_processed_helper"`

	ActiveState   string `mapstructure:"active_state"`
	InactiveState string `mapstructure:"inactive_state"`

	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// MissingError marks a required value that was absent from both the
// command line and the environment. It maps to exit code 2.
type MissingError struct {
	Label string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing required value: %s", e.Label)
}

var entityIDRegexp = regexp.MustCompile(`^[a-z0-9_]+\.[a-z0-9_]+$`)

// CheckEntityID validates and normalizes a Home Assistant entity id
// of the form <domain>.<object_id>.
func CheckEntityID(entityID string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(entityID))
	if !entityIDRegexp.MatchString(lower) {
		return "", fmt.Errorf("invalid entity id %q: must be <domain>.<object_id>", entityID)
	}
	return lower, nil
}

// SetDefaults registers the default value for every config key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	// base_url and token default to empty so the keys are always
	// known to viper and can be satisfied from the environment
	v.SetDefault("base_url", "")
	v.SetDefault("token", "")
	v.SetDefault("energy_sensor", "sensor.test_energy_yesterday")
	v.SetDefault("energy_write_entity", "")
	v.SetDefault("status_entity", "input_select.test_status")
	v.SetDefault("lifetime_helper", "input_number.test_lifetime_energy")
	v.SetDefault("cycle_start_helper", "input_datetime.test_cycle_start")
	v.SetDefault("daily_active_helper", "input_number.test_daily_active_seconds")
	v.SetDefault("durations_helper", "input_text.test_cycle_durations")
	v.SetDefault("last_processed_helper", "input_text.test_last_processed_date")
	v.SetDefault("active_state", "running")
	v.SetDefault("inactive_state", "off")
	v.SetDefault("request_timeout", 30*time.Second)
}

// Load unmarshals and validates the resolved configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	switch v.GetString("log_level") {
	case "trace", "debug":
		cfg.LogLevel = zapcore.DebugLevel
	case "info":
		cfg.LogLevel = zapcore.InfoLevel
	case "warn":
		cfg.LogLevel = zapcore.WarnLevel
	case "error":
		cfg.LogLevel = zapcore.ErrorLevel
	default:
		cfg.LogLevel = zapcore.WarnLevel
	}

	if cfg.BaseURL == "" {
		return nil, &MissingError{Label: "HA_BASE_URL or --base-url"}
	}
	if cfg.Token == "" {
		return nil, &MissingError{Label: "HA_TOKEN or --token"}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	// energy writes go to the sensor itself unless a distinct target is set
	if cfg.EnergyWriteEntity == "" {
		cfg.EnergyWriteEntity = cfg.EnergySensor
	}

	entities := []*string{
		&cfg.EnergySensor, &cfg.EnergyWriteEntity, &cfg.StatusEntity,
		&cfg.LifetimeHelper, &cfg.CycleStartHelper, &cfg.DailyActiveHelper,
		&cfg.DurationsHelper, &cfg.LastProcessedHelper,
	}
	for _, e := range entities {
		checked, err := CheckEntityID(*e)
		if err != nil {
			return nil, err
		}
		*e = checked
	}

	if cfg.RequestTimeout <= 0 {
		return nil, errors.New("config param request_timeout must be > 0")
	}

	return &cfg, nil
}
