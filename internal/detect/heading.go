package detect

import (
	"context"
	"fmt"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// HeadingDetector flags skipped heading levels. Screen reader users rely on
// the heading outline to navigate; a jump from h1 to h3 reads like a
// missing section.
//
// The last-seen level starts at 0 on every page, so the expected level for
// the first heading is always 1. The level advances to each heading's
// actual level whether or not it violated the rule, which keeps a single
// skip from cascading into one issue per subsequent heading.
type HeadingDetector struct{}

// NewHeadingDetector creates a HeadingDetector.
func NewHeadingDetector() *HeadingDetector {
	return &HeadingDetector{}
}

// Name returns the detector name.
func (d *HeadingDetector) Name() string {
	return "heading_hierarchy"
}

// Detect walks the page's headings in document order.
func (d *HeadingDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue

	prev := 0
	for _, h := range page.Headings {
		if h.Level > prev+1 {
			ref := model.ElementRef{Page: page.Number, Kind: model.KindHeading, Index: h.Index}
			issue := model.NewIssue(model.TypeHeadingHierarchy, ref)
			issue.Description = fmt.Sprintf("Heading level jumps from h%d to h%d (expected h%d)", prev, h.Level, prev+1)
			issue.CurrentState = fmt.Sprintf("Heading hierarchy: h%d -> h%d", prev, h.Level)
			issues = append(issues, issue)
		}
		prev = h.Level
	}
	return issues, nil
}
