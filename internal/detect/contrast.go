package detect

import (
	"context"
	"fmt"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/contrast"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// ContrastDetector flags text blocks whose foreground/background contrast
// falls below the WCAG 2.1 AA thresholds. Blocks with inherited or unknown
// colors are skipped rather than flagged: an unresolved color is not
// evidence of a violation.
type ContrastDetector struct{}

// NewContrastDetector creates a ContrastDetector.
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{}
}

// Name returns the detector name.
func (d *ContrastDetector) Name() string {
	return "color_contrast"
}

// Detect evaluates every text block with resolvable colors. A failing ratio
// (below 3:1) is high severity; a borderline ratio for normal text is
// medium.
func (d *ContrastDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue

	for _, block := range page.TextBlocks {
		if block.Foreground == "" || block.Background == "" {
			continue
		}

		res, err := contrast.EvaluateHex(block.Foreground, block.Background, block.FontSize, block.Bold)
		if err != nil {
			// Unparseable color values are treated like unresolved ones.
			continue
		}
		if res.Level == contrast.LevelPass {
			continue
		}

		required := contrast.AANormalRatio
		if res.Large {
			required = contrast.AALargeRatio
		}

		ref := model.ElementRef{Page: page.Number, Kind: model.KindTextBlock, Index: block.Index}
		issue := model.NewIssue(model.TypeLowContrast, ref)
		if res.Level == contrast.LevelBorderline {
			issue.SetSeverity(model.SeverityMedium)
		}
		issue.Description = fmt.Sprintf("Text has contrast ratio %.1f:1, below the required %.1f:1", res.Ratio, required)
		issue.CurrentState = fmt.Sprintf("%s on %s (%.1f:1)", block.Foreground, block.Background, res.Ratio)
		issues = append(issues, issue)
	}
	return issues, nil
}
