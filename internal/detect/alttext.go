package detect

import (
	"context"
	"fmt"
	"strings"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// AltTextDetector flags images whose alternative text is missing or too
// generic to convey the image content.
//
// An explicitly empty alt value is the standard decorative-image marker and
// is accepted as correct.
type AltTextDetector struct {
	genericTokens map[string]bool
	minLength     int
}

// NewAltTextDetector creates an AltTextDetector with the given thresholds.
func NewAltTextDetector(opts Options) *AltTextDetector {
	tokens := make(map[string]bool, len(opts.GenericAltTokens))
	for _, t := range opts.GenericAltTokens {
		tokens[strings.ToLower(t)] = true
	}
	return &AltTextDetector{
		genericTokens: tokens,
		minLength:     opts.MinAltLength,
	}
}

// Name returns the detector name.
func (d *AltTextDetector) Name() string {
	return "alt_text"
}

// Detect scans the page's images in order.
func (d *AltTextDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue

	for _, img := range page.Images {
		ref := model.ElementRef{Page: page.Number, Kind: model.KindImage, Index: img.Index}

		if !img.HasAlt() {
			issue := model.NewIssue(model.TypeMissingAltText, ref)
			issue.Description = fmt.Sprintf("Image %d missing alternative text", img.Index)
			issue.CurrentState = "No alt attribute"
			issues = append(issues, issue)
			continue
		}

		alt := strings.TrimSpace(img.AltText())
		if alt == "" {
			// Decorative image, correctly marked.
			continue
		}

		if d.genericTokens[strings.ToLower(alt)] || len(alt) < d.minLength {
			issue := model.NewIssue(model.TypePoorAltText, ref)
			issue.Description = fmt.Sprintf("Image %d has poor quality alt text: %q", img.Index, alt)
			issue.CurrentState = fmt.Sprintf("Alt text: %q", alt)
			issues = append(issues, issue)
		}
	}
	return issues, nil
}
