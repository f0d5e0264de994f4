package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"habackfill/internal/config"

	"go.uber.org/zap"
)

// EntityState is the record returned by GET /api/states/<entity_id>.
type EntityState struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged string         `json:"last_changed"`
	LastUpdated string         `json:"last_updated"`
}

// Harness turns subcommands into sequences of REST calls against the
// configured Home Assistant instance. It keeps no state of its own;
// each operation blocks on every call before issuing the next.
type Harness struct {
	cfg    *config.Config
	client RestClient
	logger *zap.Logger
	out    io.Writer
	now    func() time.Time
}

func New(cfg *config.Config, client RestClient, logger *zap.Logger, out io.Writer) *Harness {
	return &Harness{
		cfg:    cfg,
		client: client,
		logger: logger.With(zap.String("component", "harness")),
		out:    out,
		now:    time.Now,
	}
}

func (h *Harness) callService(ctx context.Context, domain, service string, data map[string]any) error {
	_, err := h.client.Do(ctx, http.MethodPost, "/api/services/"+domain+"/"+service, data)
	return err
}

func (h *Harness) setState(ctx context.Context, entityID string, value any, attributes map[string]any) error {
	payload := map[string]any{
		"state": fmt.Sprint(value),
	}
	if len(attributes) > 0 {
		payload["attributes"] = attributes
	}
	_, err := h.client.Do(ctx, http.MethodPost, "/api/states/"+entityID, payload)
	return err
}

func (h *Harness) setNumber(ctx context.Context, entityID string, value float64) error {
	return h.callService(ctx, DOMAIN_INPUT_NUMBER, SERVICE_SET_VALUE, map[string]any{
		"entity_id": entityID,
		"value":     value,
	})
}

func (h *Harness) setText(ctx context.Context, entityID string, value string) error {
	return h.callService(ctx, DOMAIN_INPUT_TEXT, SERVICE_SET_VALUE, map[string]any{
		"entity_id": entityID,
		"value":     value,
	})
}

func (h *Harness) setSelect(ctx context.Context, entityID string, option string) error {
	return h.callService(ctx, DOMAIN_INPUT_SELECT, SERVICE_SELECT_OPTION, map[string]any{
		"entity_id": entityID,
		"option":    option,
	})
}

func (h *Harness) setBoolean(ctx context.Context, entityID string, value string) error {
	return h.callService(ctx, DOMAIN_INPUT_BOOLEAN, booleanService(value), map[string]any{
		"entity_id": entityID,
	})
}

func (h *Harness) setDatetime(ctx context.Context, entityID string, epochSeconds int64) error {
	return h.callService(ctx, DOMAIN_INPUT_DATETIME, SERVICE_SET_DATETIME, map[string]any{
		"entity_id": entityID,
		"timestamp": epochSeconds,
	})
}

// SetByDomain routes a write to the service matching the entity's
// domain, falling back to a direct state overwrite for anything else.
func (h *Harness) SetByDomain(ctx context.Context, entityID string, value any) error {
	switch KindOf(entityID) {
	case KindNumber:
		f, err := toFloat(value)
		if err != nil {
			return err
		}
		return h.setNumber(ctx, entityID, f)
	case KindText:
		return h.setText(ctx, entityID, fmt.Sprint(value))
	case KindSelect:
		return h.setSelect(ctx, entityID, fmt.Sprint(value))
	case KindBoolean:
		return h.setBoolean(ctx, entityID, fmt.Sprint(value))
	default:
		return h.setState(ctx, entityID, value, nil)
	}
}

// GetState reads the raw entity record.
func (h *Harness) GetState(ctx context.Context, entityID string) (json.RawMessage, error) {
	return h.client.Do(ctx, http.MethodGet, "/api/states/"+entityID, nil)
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v is not numeric", value)
	}
}

// initHelpers resets every helper to its baseline. energyWh nil means
// the energy write target is left untouched.
func (h *Harness) initHelpers(ctx context.Context, energyWh *float64) error {
	if err := h.setNumber(ctx, h.cfg.LifetimeHelper, 0); err != nil {
		return err
	}
	if err := h.setNumber(ctx, h.cfg.DailyActiveHelper, 0); err != nil {
		return err
	}
	if err := h.setText(ctx, h.cfg.DurationsHelper, "[]"); err != nil {
		return err
	}
	if err := h.setText(ctx, h.cfg.LastProcessedHelper, ""); err != nil {
		return err
	}
	if err := h.setDatetime(ctx, h.cfg.CycleStartHelper, 0); err != nil {
		return err
	}
	if err := h.SetByDomain(ctx, h.cfg.StatusEntity, h.cfg.InactiveState); err != nil {
		return err
	}
	if energyWh != nil {
		if err := h.SetByDomain(ctx, h.cfg.EnergyWriteEntity, *energyWh); err != nil {
			return err
		}
	}
	return nil
}

// Init resets all helpers to a clean baseline.
func (h *Harness) Init(ctx context.Context, energyWh *float64) error {
	if err := h.initHelpers(ctx, energyWh); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Initialized helpers and set status to inactive.")
	return nil
}

// Start marks the status entity active.
func (h *Harness) Start(ctx context.Context) error {
	if err := h.SetByDomain(ctx, h.cfg.StatusEntity, h.cfg.ActiveState); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Set status to %s.\n", h.cfg.ActiveState)
	return nil
}

// End marks the status entity inactive, optionally rewriting the
// cycle start to now minus the given duration first.
func (h *Harness) End(ctx context.Context, durationSec *int64) error {
	if durationSec != nil {
		start := h.now().Add(-time.Duration(*durationSec) * time.Second)
		if err := h.setDatetime(ctx, h.cfg.CycleStartHelper, start.Unix()); err != nil {
			return err
		}
	}
	if err := h.SetByDomain(ctx, h.cfg.StatusEntity, h.cfg.InactiveState); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Set status to %s.\n", h.cfg.InactiveState)
	return nil
}

// Energy writes a literal watt-hour value to the energy write target.
func (h *Harness) Energy(ctx context.Context, energyWh float64) error {
	if err := h.SetByDomain(ctx, h.cfg.EnergyWriteEntity, energyWh); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Set energy to %v Wh.\n", energyWh)
	return nil
}

// Split simulates a cycle straddling local midnight: cycle start at
// the given time, or ten minutes before today's midnight by default.
func (h *Harness) Split(ctx context.Context, energyWh float64, startISO string) error {
	var start time.Time
	if startISO != "" {
		parsed, err := ParseStartISO(startISO)
		if err != nil {
			return err
		}
		start = parsed
	} else {
		start = LocalMidnight(h.now()).Add(-10 * time.Minute)
	}
	if err := h.setDatetime(ctx, h.cfg.CycleStartHelper, start.Unix()); err != nil {
		return err
	}
	if err := h.SetByDomain(ctx, h.cfg.StatusEntity, h.cfg.ActiveState); err != nil {
		return err
	}
	if err := h.SetByDomain(ctx, h.cfg.EnergyWriteEntity, energyWh); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Set a pre-midnight start, set status active, and updated energy.")
	return nil
}

// ScenarioOptions drives a full cycle in one call.
type ScenarioOptions struct {
	EnergyWh    float64
	DurationSec int64
	StartISO    string
	Init        bool
}

// Scenario optionally resets the helpers, sets the cycle start, flips
// status active then inactive in one shot, and writes the energy
// value. The active/inactive flash is what the automation under test
// reacts to.
func (h *Harness) Scenario(ctx context.Context, opts ScenarioOptions) error {
	// resolve the start time first so a bad --start-iso aborts
	// before any request is issued
	var start time.Time
	if opts.StartISO != "" {
		parsed, err := ParseStartISO(opts.StartISO)
		if err != nil {
			return err
		}
		start = parsed
	} else {
		start = h.now().Add(-time.Duration(opts.DurationSec) * time.Second)
	}
	if opts.Init {
		zero := float64(0)
		if err := h.initHelpers(ctx, &zero); err != nil {
			return err
		}
	}
	if err := h.setDatetime(ctx, h.cfg.CycleStartHelper, start.Unix()); err != nil {
		return err
	}
	if err := h.SetByDomain(ctx, h.cfg.StatusEntity, h.cfg.ActiveState); err != nil {
		return err
	}
	if err := h.SetByDomain(ctx, h.cfg.StatusEntity, h.cfg.InactiveState); err != nil {
		return err
	}
	if err := h.SetByDomain(ctx, h.cfg.EnergyWriteEntity, opts.EnergyWh); err != nil {
		return err
	}
	fmt.Fprintln(h.out, "Ran scenario: start -> end -> energy update.")
	return nil
}

// DumpEntities is the read set inspected by dump and watch.
func (h *Harness) DumpEntities() []string {
	return []string{
		h.cfg.EnergySensor,
		h.cfg.StatusEntity,
		h.cfg.LifetimeHelper,
		h.cfg.CycleStartHelper,
		h.cfg.DailyActiveHelper,
		h.cfg.DurationsHelper,
		h.cfg.LastProcessedHelper,
	}
}

// Dump pretty-prints the current state of every tracked entity.
func (h *Harness) Dump(ctx context.Context) error {
	for _, entityID := range h.DumpEntities() {
		raw, err := h.GetState(ctx, entityID)
		if err != nil {
			return err
		}
		pretty, err := formatJSON(raw)
		if err != nil {
			return err
		}
		fmt.Fprintln(h.out, pretty)
	}
	return nil
}

// formatJSON reindents a raw document with sorted object keys.
func formatJSON(raw json.RawMessage) (string, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode entity state: %w", err)
	}
	data, err := json.MarshalIndent(decoded, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
