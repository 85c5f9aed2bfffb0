package model

// Status tracks what happened to an issue during remediation.
// An issue starts Open and transitions at most once.
type Status string

const (
	// StatusOpen means no remediation decision has been made yet.
	StatusOpen Status = "Open"

	// StatusAutoFixed means the planner applied an automatic fix.
	StatusAutoFixed Status = "Auto-Fixed"

	// StatusManualReview means the issue requires human judgment.
	StatusManualReview Status = "Manual Review Required"
)

// Issue is a single detected accessibility violation. Detectors create
// issues with type, location, and descriptive fields; the classifier fills
// in severity, priority, WCAG criterion, and time estimate; the remediation
// planner updates only Status and Placeholder.
type Issue struct {
	// Type is the issue type identifier (see the Type* constants).
	Type string `json:"type"`

	// Severity is the classified severity tier.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity for serialized output.
	SeverityText string `json:"severity_text,omitempty"`

	// Page is the 1-based page number the issue was found on.
	Page int `json:"page"`

	// Element references the offending element in the document model.
	Element ElementRef `json:"element"`

	// Description is a human-readable summary of the violation.
	Description string `json:"description"`

	// CurrentState snapshots the offending content as found.
	CurrentState string `json:"current_state"`

	// RequiredAction tells the content owner what to do.
	RequiredAction string `json:"required_action"`

	// WCAGCriterion is the WCAG 2.1 success criterion identifier.
	WCAGCriterion string `json:"wcag_criterion"`

	// Priority is the remediation priority label.
	Priority Priority `json:"priority"`

	// EstimatedTime is the estimated remediation time range.
	EstimatedTime string `json:"estimated_time"`

	// Suggestions holds optional replacement suggestions (link text).
	Suggestions []string `json:"suggestions,omitempty"`

	// Status is the remediation status. Only the planner writes it.
	Status Status `json:"status"`

	// Placeholder is true when the issue was auto-fixed with a generic
	// fallback value rather than a substantive suggestion. Placeholder
	// fixes stay on the manual worklist and still count against the score.
	Placeholder bool `json:"placeholder,omitempty"`
}

// NewIssue creates an Open issue of the given type and classifies it from
// the issue-type table. Detector-specific fields (description, snapshot,
// suggestions) are set by the caller afterwards.
func NewIssue(issueType string, ref ElementRef) *Issue {
	info := GetIssueInfo(issueType)
	issue := &Issue{
		Type:           issueType,
		Page:           ref.Page,
		Element:        ref,
		RequiredAction: info.RequiredAction,
		WCAGCriterion:  info.WCAGCriterion,
		EstimatedTime:  info.EstimatedTime,
		Status:         StatusOpen,
	}
	issue.SetSeverity(info.Severity)
	return issue
}

// SetSeverity sets the severity and keeps the derived fields (text form and
// priority) consistent. Detectors that grade by measurement (contrast ratio,
// font size) call this to override the table default.
func (i *Issue) SetSeverity(s Severity) {
	i.Severity = s
	i.SeverityText = s.String()
	i.Priority = PriorityFor(s)
}

// Resolve transitions the issue out of Open. The transition happens at most
// once; later calls are ignored so re-running the planner cannot flip an
// already-decided issue.
func (i *Issue) Resolve(status Status, placeholder bool) bool {
	if i.Status != StatusOpen {
		return false
	}
	i.Status = status
	i.Placeholder = placeholder
	return true
}

// NeedsManualAction reports whether the issue belongs on the manual
// worklist. Substantively auto-fixed issues drop off; open, manual-review,
// and placeholder-fixed issues remain.
func (i *Issue) NeedsManualAction() bool {
	return i.Status != StatusAutoFixed || i.Placeholder
}

// CountsAgainstScore reports whether the issue still subtracts from the
// accessibility score. Mirrors NeedsManualAction: a placeholder is not a
// substantive fix.
func (i *Issue) CountsAgainstScore() bool {
	return i.NeedsManualAction()
}
