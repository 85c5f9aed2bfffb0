package detect

import (
	"context"
	"fmt"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// SmallFontDetector flags text blocks below the readable size floor.
// Slides are read from the back of a room; 12pt is already small there.
// Blocks with an unknown size (zero) are skipped, not flagged.
type SmallFontDetector struct {
	floor       float64
	severeFloor float64
}

// NewSmallFontDetector creates a SmallFontDetector with the given floors.
func NewSmallFontDetector(opts Options) *SmallFontDetector {
	return &SmallFontDetector{
		floor:       opts.FontFloor,
		severeFloor: opts.FontSevereFloor,
	}
}

// Name returns the detector name.
func (d *SmallFontDetector) Name() string {
	return "small_font"
}

// Detect scans the page's text blocks in order. Text below the floor is low
// severity; text far below (under the severe floor) is medium.
func (d *SmallFontDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue

	for _, block := range page.TextBlocks {
		if block.FontSize <= 0 || block.FontSize >= d.floor {
			continue
		}

		ref := model.ElementRef{Page: page.Number, Kind: model.KindTextBlock, Index: block.Index}
		issue := model.NewIssue(model.TypeSmallFont, ref)
		if block.FontSize < d.severeFloor {
			issue.SetSeverity(model.SeverityMedium)
		}
		issue.Description = fmt.Sprintf("Text uses %.0fpt font, below the %.0fpt minimum", block.FontSize, d.floor)
		issue.CurrentState = fmt.Sprintf("Font size: %.1fpt", block.FontSize)
		issues = append(issues, issue)
	}
	return issues, nil
}
