package score

import (
	"testing"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// openIssue returns an unresolved issue of the given severity.
func openIssue(s model.Severity) *model.Issue {
	issue := &model.Issue{Status: model.StatusOpen}
	issue.SetSeverity(s)
	return issue
}

// fixedIssue returns a substantively auto-fixed issue.
func fixedIssue(s model.Severity) *model.Issue {
	issue := openIssue(s)
	issue.Resolve(model.StatusAutoFixed, false)
	return issue
}

// placeholderIssue returns a placeholder-fixed issue.
func placeholderIssue(s model.Severity) *model.Issue {
	issue := openIssue(s)
	issue.Resolve(model.StatusAutoFixed, true)
	return issue
}

// TestPenalty tests the severity-to-penalty mapping.
func TestPenalty(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity model.Severity
		expected int
	}{
		{model.SeverityCritical, 25},
		{model.SeverityHigh, 15},
		{model.SeverityMedium, 12},
		{model.SeverityLow, 5},
	}

	for _, tc := range testCases {
		if got := Penalty(tc.severity); got != tc.expected {
			t.Errorf("Penalty(%s) = %d, expected %d", tc.severity, got, tc.expected)
		}
	}
}

// TestPageScore tests per-page scoring.
func TestPageScore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		issues   []*model.Issue
		expected int
	}{
		{
			name:     "no issues",
			expected: 100,
		},
		{
			name:     "single critical",
			issues:   []*model.Issue{openIssue(model.SeverityCritical)},
			expected: 75,
		},
		{
			name: "mixed open issues",
			issues: []*model.Issue{
				openIssue(model.SeverityHigh),
				openIssue(model.SeverityMedium),
			},
			expected: 73,
		},
		{
			name: "substantive fix does not count",
			issues: []*model.Issue{
				fixedIssue(model.SeverityCritical),
				openIssue(model.SeverityLow),
			},
			expected: 95,
		},
		{
			name: "placeholder fix still counts",
			issues: []*model.Issue{
				placeholderIssue(model.SeverityCritical),
			},
			expected: 75,
		},
		{
			name: "clamped at zero",
			issues: []*model.Issue{
				openIssue(model.SeverityCritical),
				openIssue(model.SeverityCritical),
				openIssue(model.SeverityCritical),
				openIssue(model.SeverityCritical),
				openIssue(model.SeverityCritical),
			},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			page := &model.Page{Number: 1, Issues: tc.issues}
			if got := PageScore(page); got != tc.expected {
				t.Errorf("PageScore = %d, expected %d", got, tc.expected)
			}
		})
	}
}

// TestDocumentScore tests the mean-of-pages aggregate and that page scores
// are stored on the pages.
func TestDocumentScore(t *testing.T) {
	t.Parallel()

	doc := &model.Document{
		Pages: []*model.Page{
			{Number: 1, Issues: []*model.Issue{
				openIssue(model.SeverityHigh),
				openIssue(model.SeverityMedium),
			}},
			{Number: 2},
			{Number: 3, Issues: []*model.Issue{openIssue(model.SeverityLow)}},
		},
	}

	// Pages score 73, 100, 95; mean 268/3 rounds down to 89.
	if got := DocumentScore(doc); got != 89 {
		t.Errorf("DocumentScore = %d, expected 89", got)
	}
	if doc.Score != 89 {
		t.Errorf("doc.Score = %d, expected 89", doc.Score)
	}
	for i, expected := range []int{73, 100, 95} {
		if doc.Pages[i].Score != expected {
			t.Errorf("page %d score = %d, expected %d", i+1, doc.Pages[i].Score, expected)
		}
	}
}

// TestDocumentScoreEmpty tests the empty-document case.
func TestDocumentScoreEmpty(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	if got := DocumentScore(doc); got != MaxScore {
		t.Errorf("DocumentScore = %d, expected %d", got, MaxScore)
	}
}

// TestScoresWithinBounds tests the [0, 100] invariant over a spread of
// issue loads.
func TestScoresWithinBounds(t *testing.T) {
	t.Parallel()

	for n := range 20 {
		page := &model.Page{Number: 1}
		for range n {
			page.Issues = append(page.Issues, openIssue(model.SeverityCritical))
		}
		got := PageScore(page)
		if got < 0 || got > MaxScore {
			t.Errorf("PageScore with %d issues = %d, outside [0, %d]", n, got, MaxScore)
		}
	}
}
