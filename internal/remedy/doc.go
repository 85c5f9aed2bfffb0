// Package remedy decides what happens to each detected issue and applies the
// automatic fixes to the document model.
//
// The planner walks the document's issues in detection order and routes each
// one by type: missing alt text and vague link text can be fixed in place,
// poor alt text can be upgraded when the assistant produces a substantively
// better description, and structural problems (heading hierarchy, contrast,
// all-caps, small fonts, table headers) always go to manual review because
// fixing them changes the document's visual design.
//
// Every applied fix is recorded in a RemediationLog entry carrying the
// before and after content, so a reviewer can audit or revert any change.
// The planner is idempotent: re-running it over an already-remediated
// document applies nothing, because resolved issues refuse a second
// transition and the log refuses no-op and duplicate entries.
package remedy
