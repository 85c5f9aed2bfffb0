package model

// Severity represents how badly an accessibility issue affects users of
// assistive technology.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityLow indicates minor issues with limited impact.
	// Example: body text slightly below the recommended size floor.
	SeverityLow Severity = iota

	// SeverityMedium indicates issues that degrade the experience but leave
	// content reachable. Examples: vague link text, skipped heading levels,
	// borderline contrast.
	SeverityMedium

	// SeverityHigh indicates issues that make content inaccessible to some
	// users. Examples: images without alternative text, contrast below 3:1.
	SeverityHigh

	// SeverityCritical indicates issues that block access to essential
	// content entirely. Reserved for future checks; none of the current
	// detectors emit it.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Priority is the remediation priority label shown to content owners.
type Priority string

// Priority labels in decreasing urgency.
const (
	PriorityMustFix   Priority = "Must Fix"
	PriorityShouldFix Priority = "Should Fix"
	PriorityCouldFix  Priority = "Could Fix"
)

// PriorityFor maps a severity tier to its remediation priority.
// Critical and high severity issues must be fixed before publication.
func PriorityFor(s Severity) Priority {
	switch s {
	case SeverityCritical, SeverityHigh:
		return PriorityMustFix
	case SeverityMedium:
		return PriorityShouldFix
	default:
		return PriorityCouldFix
	}
}

// Issue type identifiers emitted by the detectors.
const (
	TypeMissingAltText      = "missing_alt_text"
	TypePoorAltText         = "poor_alt_text"
	TypeVagueLinkText       = "vague_link_text"
	TypeHeadingHierarchy    = "heading_hierarchy"
	TypeLowContrast         = "low_contrast"
	TypeAllCapsText         = "all_caps_text"
	TypeSmallFont           = "small_font"
	TypeMissingTableHeaders = "missing_table_headers"
)

// IssueInfo contains the classification metadata for an issue type: the
// default severity, the WCAG 2.1 success criterion it violates, the action a
// human reviewer must take, and a per-occurrence time estimate.
type IssueInfo struct {
	Severity       Severity
	WCAGCriterion  string
	RequiredAction string
	EstimatedTime  string
}

// issueInfoMapping maps issue types to their classification metadata.
// This centralized table ensures consistent assessment across the
// application: adding a new issue type is a table edit, not new logic.
//
// Design decision: We use a map rather than embedding metadata in each
// detector because:
//  1. It provides a single source of truth for severity and WCAG criteria
//  2. Detectors stay focused on recognition, not classification
//  3. It makes it easy to generate documentation of all checks
var issueInfoMapping = map[string]IssueInfo{
	TypeMissingAltText: {
		Severity:       SeverityHigh,
		WCAGCriterion:  "1.1.1 Non-text Content",
		RequiredAction: "Add descriptive alt text explaining the image content and purpose",
		EstimatedTime:  "2-5 minutes",
	},
	TypePoorAltText: {
		Severity:       SeverityMedium,
		WCAGCriterion:  "1.1.1 Non-text Content",
		RequiredAction: "Replace with descriptive alt text that explains the image's content and purpose",
		EstimatedTime:  "3-7 minutes",
	},
	TypeVagueLinkText: {
		Severity:       SeverityMedium,
		WCAGCriterion:  "2.4.4 Link Purpose (In Context)",
		RequiredAction: "Replace with descriptive text that explains the link's destination or purpose",
		EstimatedTime:  "2-3 minutes",
	},
	TypeHeadingHierarchy: {
		Severity:       SeverityMedium,
		WCAGCriterion:  "1.3.1 Info and Relationships",
		RequiredAction: "Use sequential heading levels (h1, h2, h3, ...) without skipping",
		EstimatedTime:  "1-2 minutes",
	},
	TypeLowContrast: {
		Severity:       SeverityHigh,
		WCAGCriterion:  "1.4.3 Contrast (Minimum)",
		RequiredAction: "Adjust foreground or background color to meet the 4.5:1 contrast ratio",
		EstimatedTime:  "2-4 minutes",
	},
	TypeAllCapsText: {
		Severity:       SeverityMedium,
		WCAGCriterion:  "1.4.8 Visual Presentation",
		RequiredAction: "Convert to sentence case; use bold or emphasis for importance",
		EstimatedTime:  "2-6 minutes",
	},
	TypeSmallFont: {
		Severity:       SeverityLow,
		WCAGCriterion:  "1.4.4 Resize Text",
		RequiredAction: "Increase the font size to at least 12pt",
		EstimatedTime:  "1-2 minutes",
	},
	TypeMissingTableHeaders: {
		Severity:       SeverityMedium,
		WCAGCriterion:  "1.3.1 Info and Relationships",
		RequiredAction: "Mark the first row as a header row so screen readers announce column names",
		EstimatedTime:  "3-5 minutes",
	},
}

// GetIssueInfo returns the classification metadata for an issue type.
// Unknown types get a conservative medium-severity default so a detector
// added without a table entry is still surfaced rather than dropped.
func GetIssueInfo(issueType string) IssueInfo {
	if info, ok := issueInfoMapping[issueType]; ok {
		return info
	}
	return IssueInfo{
		Severity:       SeverityMedium,
		WCAGCriterion:  "WCAG 2.1 AA",
		RequiredAction: "Review the flagged element manually",
		EstimatedTime:  "2-3 minutes",
	}
}

// GetSeverity returns the default severity for an issue type.
func GetSeverity(issueType string) Severity {
	return GetIssueInfo(issueType).Severity
}

// IssueTypes returns all issue types known to the classification table.
func IssueTypes() []string {
	types := make([]string, 0, len(issueInfoMapping))
	for t := range issueInfoMapping {
		types = append(types, t)
	}
	return types
}
