package model

import "time"

// Report is the final, read-only analysis result for one document.
// It is built once by the report builder after scoring and never mutated.
type Report struct {
	// DocumentInfo describes the analyzed document.
	DocumentInfo DocumentInfo `json:"document_info"`

	// ExecutiveSummary aggregates counts and the overall score.
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`

	// Pages is the ordered per-page breakdown.
	Pages []PageReport `json:"pages"`

	// RemediationSummary groups fixes and remaining manual work.
	RemediationSummary RemediationSummary `json:"remediation_summary"`

	// Warnings lists non-fatal analysis warnings (skipped malformed
	// elements). These never fail a run.
	Warnings []string `json:"warnings,omitempty"`
}

// DocumentInfo holds document metadata for the report header.
type DocumentInfo struct {
	// FileName is the document name as supplied by the parser.
	FileName string `json:"file_name"`

	// AnalysisDate is when the analysis was performed.
	AnalysisDate time.Time `json:"analysis_date"`

	// TotalPages is the number of pages analyzed.
	TotalPages int `json:"total_pages"`
}

// ExecutiveSummary is the at-a-glance summary for the report header.
type ExecutiveSummary struct {
	// OverallScore is the document accessibility score in [0, 100].
	OverallScore int `json:"overall_score"`

	// TotalIssues is the number of issues detected before remediation.
	TotalIssues int `json:"total_issues"`

	// Per-severity counts of detected issues.
	CriticalIssues int `json:"critical_issues"`
	HighIssues     int `json:"high_issues"`
	MediumIssues   int `json:"medium_issues"`
	LowIssues      int `json:"low_issues"`

	// FixesApplied is the number of automatic fixes applied.
	FixesApplied int `json:"fixes_applied"`

	// ManualReviewNeeded is the number of issues left for a human.
	ManualReviewNeeded int `json:"manual_review_needed"`
}

// PageReport is the per-page section of the report.
type PageReport struct {
	// PageNumber is the 1-based page index.
	PageNumber int `json:"page_number"`

	// Title is the page title, empty if none.
	Title string `json:"title,omitempty"`

	// Issues lists the issues found on the page in traversal order.
	Issues []*Issue `json:"issues"`

	// AccessibilityScore is the page score in [0, 100].
	AccessibilityScore int `json:"accessibility_score"`

	// ElementsAnalyzed counts the elements the detectors examined.
	ElementsAnalyzed ElementCounts `json:"elements_analyzed"`

	// Remediation summarizes fix activity on the page.
	Remediation PageRemediation `json:"remediation"`
}

// ElementCounts tallies the analyzed elements of a page.
type ElementCounts struct {
	Images   int `json:"images"`
	Links    int `json:"links"`
	Headings int `json:"headings"`
	Tables   int `json:"tables"`
}

// Total returns the number of analyzed elements on the page.
func (c ElementCounts) Total() int {
	return c.Images + c.Links + c.Headings + c.Tables
}

// PageRemediation summarizes fix activity for one page.
type PageRemediation struct {
	// AutomaticFixesApplied counts automatic fixes on this page.
	AutomaticFixesApplied int `json:"automatic_fixes_applied"`

	// ManualActionsRemaining counts issues still needing a human.
	ManualActionsRemaining int `json:"manual_actions_remaining"`

	// FixesDetails lists the actions applied to this page.
	FixesDetails []RemediationAction `json:"fixes_details,omitempty"`

	// Status is a coarse label: "Fully Remediated", "Partially Remediated",
	// "Manual Review Required", or "No Issues Found".
	Status string `json:"status"`
}

// RemediationSummary is the document-level remediation roll-up.
type RemediationSummary struct {
	// AutomaticFixes lists every applied action across all pages.
	AutomaticFixes []RemediationAction `json:"automatic_fixes"`

	// ManualActionsNeeded groups remaining work by issue type.
	ManualActionsNeeded []ManualAction `json:"manual_actions_needed"`
}

// ManualAction aggregates all unresolved issues of one type into a single
// worklist entry for the content owner.
type ManualAction struct {
	// IssueType is the human-readable issue type title ("Missing Alt Text").
	IssueType string `json:"issue_type"`

	// Count is how many issues of this type remain.
	Count int `json:"count"`

	// PagesAffected lists the pages with at least one such issue, ascending.
	PagesAffected []int `json:"pages_affected"`

	// Priority is the highest priority among the grouped issues.
	Priority Priority `json:"priority"`

	// TotalEstimatedTime sums the per-issue estimates, e.g. "14 minutes".
	TotalEstimatedTime string `json:"total_estimated_time"`

	// WCAGCriterion is the criterion shared by the grouped issues.
	WCAGCriterion string `json:"wcag_criterion"`

	// ActionNeeded is the required action text for this issue type.
	ActionNeeded string `json:"action_needed"`
}
