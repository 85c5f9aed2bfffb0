package model

// RemediationAction records one automatic fix applied to the document model.
// Actions are append-only: they are never mutated after creation, and the
// original content is preserved in Before so every fix is reversible.
type RemediationAction struct {
	// Element references the element whose content was changed.
	Element ElementRef `json:"element"`

	// Type is the kind of fix applied ("alt_text" or "link_text").
	Type string `json:"type"`

	// Before is the content prior to the fix (empty for absent alt text).
	Before string `json:"before"`

	// After is the content written into the document model.
	After string `json:"after"`

	// Automatic is true for fixes applied without human review.
	Automatic bool `json:"automatic"`

	// Note carries an annotation about how the fix was produced, e.g. that
	// the assistant was unavailable and a placeholder was used.
	Note string `json:"note,omitempty"`
}

// Remediation action types.
const (
	ActionAltText  = "alt_text"
	ActionLinkText = "link_text"
)

// RemediationLog is the per-document list of applied actions.
//
// Design decision: A thin wrapper over a slice rather than a bare []Action
// so the invariant checks (no before==after entries, no duplicates per
// element) live next to the data they protect.
type RemediationLog struct {
	actions []RemediationAction
}

// Append records an action. It refuses entries whose after-value equals the
// before-value and entries duplicating an element already fixed, returning
// false in both cases. This is what makes re-running the planner idempotent.
func (l *RemediationLog) Append(action RemediationAction) bool {
	if action.Before == action.After {
		return false
	}
	for _, a := range l.actions {
		if a.Element == action.Element && a.Type == action.Type {
			return false
		}
	}
	l.actions = append(l.actions, action)
	return true
}

// Actions returns the recorded actions in application order.
func (l *RemediationLog) Actions() []RemediationAction {
	return l.actions
}

// Len returns the number of recorded actions.
func (l *RemediationLog) Len() int {
	return len(l.actions)
}

// ForPage returns the actions applied to elements of the given page.
func (l *RemediationLog) ForPage(page int) []RemediationAction {
	var out []RemediationAction
	for _, a := range l.actions {
		if a.Element.Page == page {
			out = append(out, a)
		}
	}
	return out
}
