package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoTarget is returned when no document model file is specified.
	ErrNoTarget = errors.New("no target specified: provide at least one document model file")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no documents are ever analyzed.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidAssistantTimeout is returned when the assistant timeout is
	// not positive. A zero timeout would fail every suggestion request.
	ErrInvalidAssistantTimeout = errors.New("invalid assistant timeout: must be positive")

	// ErrInvalidAssistantRetries is returned when the retry count is below 1.
	// At least one attempt per suggestion is required.
	ErrInvalidAssistantRetries = errors.New("invalid assistant retries: must be at least 1")
)
