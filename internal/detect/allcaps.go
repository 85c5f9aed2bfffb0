package detect

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// AllCapsDetector flags text blocks written entirely in capital letters.
// All-caps text is harder to read because word shapes disappear, and some
// screen readers spell it out letter by letter.
//
// Short runs are skipped: acronyms and labels like "FAQ" or "UNL" are fine.
// All offending blocks on a page are aggregated into one issue so a slide
// styled in caps does not bury the rest of the report.
type AllCapsDetector struct {
	minLength int
}

// NewAllCapsDetector creates an AllCapsDetector with the given length floor.
func NewAllCapsDetector(opts Options) *AllCapsDetector {
	return &AllCapsDetector{minLength: opts.AllCapsMinLength}
}

// Name returns the detector name.
func (d *AllCapsDetector) Name() string {
	return "all_caps"
}

// Detect aggregates all offending blocks on the page into a single issue
// anchored at the first offender.
func (d *AllCapsDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var offenders []*model.TextBlock
	for _, block := range page.TextBlocks {
		if d.isAllCaps(block.Text) {
			offenders = append(offenders, block)
		}
	}
	if len(offenders) == 0 {
		return nil, nil
	}

	ref := model.ElementRef{Page: page.Number, Kind: model.KindTextBlock, Index: offenders[0].Index}
	issue := model.NewIssue(model.TypeAllCapsText, ref)
	issue.Description = fmt.Sprintf("%d text block(s) in ALL CAPS", len(offenders))
	issue.CurrentState = fmt.Sprintf("%d text element(s) using all capital letters: %s",
		len(offenders), strings.Join(examples(offenders), "; "))
	// Effort grows with the number of blocks to rewrite.
	issue.EstimatedTime = fmt.Sprintf("%d-%d minutes", len(offenders)*2, len(offenders)*3)

	return []*model.Issue{issue}, nil
}

// isAllCaps reports whether the text is long enough to matter and every
// letter in it is uppercase.
func (d *AllCapsDetector) isAllCaps(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < d.minLength {
		return false
	}

	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// examples returns up to three truncated samples of the offending text.
func examples(blocks []*model.TextBlock) []string {
	const maxSamples = 3
	const maxLen = 50

	var out []string
	for _, b := range blocks {
		if len(out) == maxSamples {
			break
		}
		sample := strings.TrimSpace(b.Text)
		if len(sample) > maxLen {
			sample = sample[:maxLen] + "..."
		}
		out = append(out, fmt.Sprintf("%q", sample))
	}
	return out
}
