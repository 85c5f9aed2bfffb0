package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultAssistantHost is the standard Ollama listen address for the
	// suggestion assistant.
	DefaultAssistantHost = "localhost:11434"

	// DefaultAssistantModel is the generation model requested by default.
	// An 8B model keeps suggestion latency tolerable on workstation
	// hardware while producing usable alt text.
	DefaultAssistantModel = "llama3.1:8b"

	// DefaultAssistantTimeout bounds a single suggestion request. Local
	// model inference is slow; anything past this means the service is
	// wedged and the placeholder fallback should take over.
	DefaultAssistantTimeout = 30 * time.Second

	// DefaultAssistantRetries is the number of attempts per suggestion.
	DefaultAssistantRetries = 3

	// DefaultBatchSize is the number of documents analyzed concurrently.
	// Analysis is CPU-light; the bound mostly protects the assistant from
	// a flood of parallel suggestion requests.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "remediator"
)

// Config holds all configuration options for the remediator.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., AssistantConfig, ReportConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Targets is the list of document model files to analyze.
	// Must contain at least one path.
	Targets []string

	// AutoFix enables automatic remediation. When false, every issue is
	// routed to manual review and documents are never modified.
	AutoFix bool

	// AssistantEnabled turns on the external suggestion assistant.
	// When false, fixes fall back to placeholders and local heuristics.
	AssistantEnabled bool

	// AssistantHost is the assistant address in "host:port" format.
	AssistantHost string

	// AssistantModel is the generation model name requested from the
	// assistant.
	AssistantModel string

	// AssistantTimeout is the per-request timeout for suggestion calls.
	AssistantTimeout time.Duration

	// AssistantRetries is the number of attempts per suggestion.
	AssistantRetries int

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// FixedModelPath is where the remediated document model is saved for
	// the format-parser collaborator to apply back to the source file.
	// With multiple targets this is treated as a directory.
	// When empty, the remediated model is not written out.
	FixedModelPath string

	// BatchSize is the number of documents analyzed concurrently when
	// multiple targets are given.
	BatchSize int

	// DisabledDetectors lists detector names to skip during analysis.
	DisabledDetectors []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .remediator in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// DocConfigs holds per-document configurations loaded from the config
	// file. Populated by LoadConfigFile.
	DocConfigs *File

	// DBDir is the directory path for storing the SQLite run-history
	// database. Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to record analysis runs in the history
	// database. Disabled by the --no-save flag.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeouts, the
// assistant address). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		AutoFix:          true,
		AssistantHost:    DefaultAssistantHost,
		AssistantModel:   DefaultAssistantModel,
		AssistantTimeout: DefaultAssistantTimeout,
		AssistantRetries: DefaultAssistantRetries,
		BatchSize:        DefaultBatchSize,
		SaveToDB:         true,
	}
}

// XDGDataDir returns the XDG data directory for the remediator.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/remediator
// On macOS: ~/Library/Application Support/remediator
// On Windows: %LOCALAPPDATA%\remediator
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the remediator.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any analysis begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.AssistantEnabled {
		if c.AssistantTimeout <= 0 {
			return ErrInvalidAssistantTimeout
		}
		if c.AssistantRetries < 1 {
			return ErrInvalidAssistantRetries
		}
	}

	return nil
}
