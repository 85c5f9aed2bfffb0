package detect

import (
	"context"
	"strings"
	"testing"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// TestAllCapsDetectorAggregation tests that a page yields at most one issue
// listing all offending blocks.
func TestAllCapsDetectorAggregation(t *testing.T) {
	t.Parallel()

	d := NewAllCapsDetector(DefaultOptions())
	page := &model.Page{Number: 1, TextBlocks: []*model.TextBlock{
		{Index: 1, Text: "IMPORTANT DEADLINE FRIDAY"},
		{Index: 2, Text: "Regular sentence case text."},
		{Index: 3, Text: "SUBMIT ALL ASSIGNMENTS ON CANVAS"},
	}}

	issues, err := d.Detect(context.Background(), nil, page)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("got %d issues, expected 1 aggregated issue", len(issues))
	}

	issue := issues[0]
	if issue.Type != model.TypeAllCapsText {
		t.Errorf("type = %q", issue.Type)
	}
	if !strings.Contains(issue.Description, "2 text block") {
		t.Errorf("description %q does not count 2 blocks", issue.Description)
	}
	// Anchored at the first offender so the element reference resolves.
	if issue.Element.Index != 1 {
		t.Errorf("element index = %d, expected 1", issue.Element.Index)
	}
	// Time estimate scales with block count: 2 blocks -> 4-6 minutes.
	if issue.EstimatedTime != "4-6 minutes" {
		t.Errorf("estimated time = %q, expected %q", issue.EstimatedTime, "4-6 minutes")
	}
}

// TestAllCapsDetectorSkips tests acronyms, short runs, and mixed case.
func TestAllCapsDetectorSkips(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
	}{
		{"short acronym", "UNL"},
		{"acronym with digits", "WCAG 2.1"},
		{"mixed case", "Important Deadline Friday"},
		{"digits only", "1234567890123"},
		{"mostly caps but one lower", "IMPORTANT DEADLINE friday"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := NewAllCapsDetector(DefaultOptions())
			page := &model.Page{Number: 1, TextBlocks: []*model.TextBlock{{Index: 1, Text: tc.text}}}

			issues, err := d.Detect(context.Background(), nil, page)
			if err != nil {
				t.Fatalf("Detect returned error: %v", err)
			}
			if len(issues) != 0 {
				t.Errorf("text %q was flagged", tc.text)
			}
		})
	}
}
