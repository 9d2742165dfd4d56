// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts and test harnesses.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrConfigWrite   = "CONFIG_WRITE_ERROR"
	ErrStateInvalid  = "STATE_INVALID"
	ErrStateWrite    = "STATE_WRITE_ERROR"

	// Range errors
	ErrRangeUnknown      = "RANGE_UNKNOWN"
	ErrCustomRangeNotSet = "CUSTOM_RANGE_NOT_SET"

	// Fixture errors
	ErrFixtureInvalid = "FIXTURE_INVALID"

	// Docs errors
	ErrTopicNotFound = "TOPIC_NOT_FOUND"

	// Validation errors
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrInvalidValue     = "INVALID_VALUE"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
