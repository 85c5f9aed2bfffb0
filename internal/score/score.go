// Package score computes the accessibility scores reported for pages and
// whole documents.
//
// Scoring is a pure function of the post-remediation issue set: each page
// starts at 100 and loses a fixed penalty per unresolved issue by severity,
// clamped at zero, and the document score is the mean of its page scores
// rounded down. Substantively auto-fixed issues no longer subtract;
// placeholder fixes and manual-review issues still do, so the score only
// improves when the document actually improved.
package score

import "github.com/chrischizinski/unl-accessibility-remediator/internal/model"

// MaxScore is the score of a page with no outstanding issues.
const MaxScore = 100

// Per-issue penalties by severity tier.
const (
	PenaltyCritical = 25
	PenaltyHigh     = 15
	PenaltyMedium   = 12
	PenaltyLow      = 5
)

// Penalty returns the score deduction for one issue of the given severity.
func Penalty(s model.Severity) int {
	switch s {
	case model.SeverityCritical:
		return PenaltyCritical
	case model.SeverityHigh:
		return PenaltyHigh
	case model.SeverityMedium:
		return PenaltyMedium
	default:
		return PenaltyLow
	}
}

// PageScore computes the score for one page from its issue list.
func PageScore(page *model.Page) int {
	s := MaxScore
	for _, issue := range page.Issues {
		if issue.CountsAgainstScore() {
			s -= Penalty(issue.Severity)
		}
	}
	if s < 0 {
		return 0
	}
	return s
}

// DocumentScore computes page scores, stores them on the pages, and returns
// the document score: the integer mean of the page scores. An empty document
// scores MaxScore.
func DocumentScore(doc *model.Document) int {
	if len(doc.Pages) == 0 {
		doc.Score = MaxScore
		return doc.Score
	}

	total := 0
	for _, page := range doc.Pages {
		page.Score = PageScore(page)
		total += page.Score
	}
	doc.Score = total / len(doc.Pages)
	return doc.Score
}
