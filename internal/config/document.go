package config

// DocumentConfig holds per-document configuration overrides. This allows
// tuning analysis behavior for individual decks, e.g. a design-heavy deck
// where the contrast detector produces noise.
type DocumentConfig struct {
	// AutoFix overrides the global auto-fix setting for this document.
	// Nil means the global setting applies.
	AutoFix *bool `yaml:"autoFix,omitempty"`

	// Model overrides the assistant model for this document.
	Model string `yaml:"model,omitempty"`

	// DisabledDetectors lists detector names to skip for this document.
	DisabledDetectors []string `yaml:"disabledDetectors,omitempty"`
}

// File represents the structure of the .remediator configuration file.
type File struct {
	// Documents maps document file names to their overrides.
	// Keys are base names (e.g., "lecture-03.pptx.json").
	Documents map[string]DocumentConfig `yaml:"documents,omitempty"`

	// Defaults contains default document configuration applied to every
	// document unless overridden in the per-document configuration.
	Defaults DocumentConfig `yaml:"defaults,omitempty"`
}

// GetDocumentConfig returns the configuration for a specific document.
// It merges the per-document configuration with defaults.
func (cf *File) GetDocumentConfig(name string) DocumentConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with per-document configuration if present
	if docConfig, ok := cf.Documents[name]; ok {
		if docConfig.AutoFix != nil {
			result.AutoFix = docConfig.AutoFix
		}
		if docConfig.Model != "" {
			result.Model = docConfig.Model
		}
		if len(docConfig.DisabledDetectors) > 0 {
			result.DisabledDetectors = docConfig.DisabledDetectors
		}
	}

	return result
}
