package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomain(t *testing.T) {

	assert := assert.New(t)

	assert.Equal("input_number", Domain("input_number.test_lifetime_energy"))
	assert.Equal("sensor", Domain("sensor.test_energy_yesterday"))
	assert.Equal("sensor", Domain("sensor"), "no dot yields the whole id")
}

func TestKindOf(t *testing.T) {

	tests := []struct {
		entityID string
		want     EntityKind
	}{
		{"input_number.test_lifetime_energy", KindNumber},
		{"input_text.test_cycle_durations", KindText},
		{"input_select.test_status", KindSelect},
		{"input_boolean.test_flag", KindBoolean},
		{"input_datetime.test_cycle_start", KindState},
		{"sensor.test_energy_yesterday", KindState},
		{"binary_sensor.motion", KindState},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.entityID), tt.entityID)
	}
}

func TestBooleanService(t *testing.T) {

	tests := []struct {
		value string
		want  string
	}{
		{"on", SERVICE_TURN_ON},
		{"ON", SERVICE_TURN_ON},
		{"True", SERVICE_TURN_ON},
		{"1", SERVICE_TURN_ON},
		{"off", SERVICE_TURN_OFF},
		{"0", SERVICE_TURN_OFF},
		{"false", SERVICE_TURN_OFF},
		{"anything", SERVICE_TURN_OFF},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, booleanService(tt.value), tt.value)
	}
}
