package harness

import "strings"

// EntityKind classifies an entity id by its domain prefix. The kind
// decides which platform service call mutates the entity; unknown
// domains fall back to a direct state overwrite.
type EntityKind int

const (
	KindNumber EntityKind = iota
	KindText
	KindSelect
	KindBoolean
	KindState
)

const (
	DOMAIN_INPUT_NUMBER   = "input_number"
	DOMAIN_INPUT_TEXT     = "input_text"
	DOMAIN_INPUT_SELECT   = "input_select"
	DOMAIN_INPUT_BOOLEAN  = "input_boolean"
	DOMAIN_INPUT_DATETIME = "input_datetime"

	SERVICE_SET_VALUE     = "set_value"
	SERVICE_SELECT_OPTION = "select_option"
	SERVICE_TURN_ON       = "turn_on"
	SERVICE_TURN_OFF      = "turn_off"
	SERVICE_SET_DATETIME  = "set_datetime"
)

// Domain returns the part of an entity id before the first dot.
func Domain(entityID string) string {
	domain, _, _ := strings.Cut(entityID, ".")
	return domain
}

// KindOf maps an entity id to its write dispatch kind.
func KindOf(entityID string) EntityKind {
	switch Domain(entityID) {
	case DOMAIN_INPUT_NUMBER:
		return KindNumber
	case DOMAIN_INPUT_TEXT:
		return KindText
	case DOMAIN_INPUT_SELECT:
		return KindSelect
	case DOMAIN_INPUT_BOOLEAN:
		return KindBoolean
	default:
		return KindState
	}
}

// truthy values for input_boolean writes
func booleanService(value string) string {
	switch strings.ToLower(value) {
	case "on", "true", "1":
		return SERVICE_TURN_ON
	default:
		return SERVICE_TURN_OFF
	}
}
