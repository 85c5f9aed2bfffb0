package remedy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/assistant"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/detect"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// PlaceholderAltText is written when an image needs alt text but no usable
// suggestion is available. It is deliberately on the generic denylist so the
// image is re-flagged on the next analysis until a human writes real text.
const PlaceholderAltText = "Image"

// ErrDanglingElement means an issue references an element that does not
// exist in the document. That is a pipeline invariant violation, not bad
// user input, so the planner aborts instead of skipping the issue.
var ErrDanglingElement = errors.New("issue references a missing element")

// Planner routes detected issues to automatic fixes or manual review and
// applies the fixes to the document model.
type Planner struct {
	assistant assistant.Assistant
	autoFix   bool
	options   detect.Options
	validator *detect.LinkTextDetector
	generic   map[string]bool
	logger    *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithAssistant wires in the suggestion service. Without one the planner
// falls back to placeholders and detector-derived suggestions only.
func WithAssistant(a assistant.Assistant) Option {
	return func(p *Planner) {
		p.assistant = a
	}
}

// WithAutoFix enables or disables automatic fixing. When disabled every
// issue is routed to manual review and the document is left untouched.
func WithAutoFix(enabled bool) Option {
	return func(p *Planner) {
		p.autoFix = enabled
	}
}

// WithDetectOptions aligns the planner's quality bars (generic alt tokens,
// vague phrases, minimum alt length) with the detector configuration, so a
// fix the planner applies is never re-flagged for the same reason.
func WithDetectOptions(opts detect.Options) Option {
	return func(p *Planner) {
		p.options = opts
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// NewPlanner creates a Planner. Auto-fixing defaults to on.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		autoFix: true,
		options: detect.DefaultOptions(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.validator = detect.NewLinkTextDetector(p.options)
	p.generic = make(map[string]bool, len(p.options.GenericAltTokens))
	for _, t := range p.options.GenericAltTokens {
		p.generic[strings.ToLower(t)] = true
	}
	return p
}

// Remediate walks the document's issues in detection order, applies
// automatic fixes to the document model, and resolves every issue to either
// Auto-Fixed or Manual Review Required. It returns the log of applied
// actions and any warnings raised along the way (assistant failures and
// fallbacks). Document mutation happens here and nowhere else.
func (p *Planner) Remediate(ctx context.Context, doc *model.Document) (*model.RemediationLog, []string, error) {
	log := &model.RemediationLog{}
	var warnings []string

	for _, issue := range doc.Issues {
		if err := ctx.Err(); err != nil {
			return log, warnings, err
		}
		if issue.Status != model.StatusOpen {
			continue
		}

		var err error
		switch issue.Type {
		case model.TypeMissingAltText:
			warnings, err = p.fixMissingAlt(ctx, doc, issue, log, warnings)
		case model.TypePoorAltText:
			warnings, err = p.fixPoorAlt(ctx, doc, issue, log, warnings)
		case model.TypeVagueLinkText:
			warnings, err = p.fixVagueLink(ctx, doc, issue, log, warnings)
		default:
			// Structural issues change the document's design; a machine
			// must not decide those.
			issue.Resolve(model.StatusManualReview, false)
		}
		if err != nil {
			return log, warnings, err
		}
	}
	return log, warnings, nil
}

// fixMissingAlt writes alt text onto an image that has none. The assistant
// suggestion is preferred; when it is unavailable or unusable the generic
// placeholder goes in so the document is at least minimally conformant, and
// the issue stays on the manual worklist.
func (p *Planner) fixMissingAlt(ctx context.Context, doc *model.Document, issue *model.Issue, log *model.RemediationLog, warnings []string) ([]string, error) {
	if !p.autoFix {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	img, ok := doc.Image(issue.Element)
	if !ok {
		return warnings, fmt.Errorf("%w: %s", ErrDanglingElement, issue.Element)
	}

	text, warnings := p.suggestAlt(ctx, doc, issue, img, warnings)

	placeholder := false
	note := ""
	if text == "" || p.generic[strings.ToLower(text)] {
		text = PlaceholderAltText
		placeholder = true
		note = "no usable suggestion available; generic placeholder applied, manual description still required"
	}

	applied := log.Append(model.RemediationAction{
		Element:   issue.Element,
		Type:      model.ActionAltText,
		Before:    img.AltText(),
		After:     text,
		Automatic: true,
		Note:      note,
	})
	if !applied {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	img.SetAlt(text)
	issue.Resolve(model.StatusAutoFixed, placeholder)
	p.logger.Debug("applied alt text fix",
		"element", issue.Element.String(),
		"placeholder", placeholder,
	)
	return warnings, nil
}

// fixPoorAlt replaces generic or too-short alt text, but only with a
// substantive improvement. There is no placeholder fallback here: replacing
// one generic value with another would change nothing, so without a good
// suggestion the issue goes to manual review.
func (p *Planner) fixPoorAlt(ctx context.Context, doc *model.Document, issue *model.Issue, log *model.RemediationLog, warnings []string) ([]string, error) {
	img, ok := doc.Image(issue.Element)
	if !ok {
		return warnings, fmt.Errorf("%w: %s", ErrDanglingElement, issue.Element)
	}

	if !p.autoFix || p.assistant == nil {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	text, warnings := p.suggestAlt(ctx, doc, issue, img, warnings)
	if !p.substantiveAlt(text, img.AltText()) {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	applied := log.Append(model.RemediationAction{
		Element:   issue.Element,
		Type:      model.ActionAltText,
		Before:    img.AltText(),
		After:     text,
		Automatic: true,
	})
	if !applied {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	img.SetAlt(text)
	issue.Resolve(model.StatusAutoFixed, false)
	p.logger.Debug("replaced poor alt text", "element", issue.Element.String())
	return warnings, nil
}

// fixVagueLink rewrites vague link text with the first acceptable candidate:
// the assistant's suggestion when available, otherwise the detector-derived
// suggestions attached to the issue.
func (p *Planner) fixVagueLink(ctx context.Context, doc *model.Document, issue *model.Issue, log *model.RemediationLog, warnings []string) ([]string, error) {
	if !p.autoFix {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	link, ok := doc.Link(issue.Element)
	if !ok {
		return warnings, fmt.Errorf("%w: %s", ErrDanglingElement, issue.Element)
	}

	var candidates []string
	if p.assistant != nil {
		text, err := p.assistant.SuggestLinkText(ctx, link.Target, p.pageContext(doc, issue.Page))
		switch {
		case err != nil && ctx.Err() != nil:
			return warnings, ctx.Err()
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("%s: assistant link suggestion failed: %v", issue.Element, err))
		default:
			candidates = append(candidates, text)
		}
	}
	candidates = append(candidates, issue.Suggestions...)

	replacement := ""
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && c != link.Text && p.validator.Acceptable(c) {
			replacement = c
			break
		}
	}
	if replacement == "" {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	applied := log.Append(model.RemediationAction{
		Element:   issue.Element,
		Type:      model.ActionLinkText,
		Before:    link.Text,
		After:     replacement,
		Automatic: true,
	})
	if !applied {
		issue.Resolve(model.StatusManualReview, false)
		return warnings, nil
	}

	link.Text = replacement
	issue.Resolve(model.StatusAutoFixed, false)
	p.logger.Debug("rewrote link text",
		"element", issue.Element.String(),
		"after", replacement,
	)
	return warnings, nil
}

// suggestAlt asks the assistant for alt text, recording a warning instead of
// failing when the service is down. Cancellation still propagates: an empty
// result with ctx done is surfaced by the caller's next ctx check.
func (p *Planner) suggestAlt(ctx context.Context, doc *model.Document, issue *model.Issue, img *model.Image, warnings []string) (string, []string) {
	if p.assistant == nil {
		return "", warnings
	}

	ref := img.Source
	if img.Description != "" {
		ref = img.Description
	}
	text, err := p.assistant.SuggestAltText(ctx, ref, p.pageContext(doc, issue.Page))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("%s: assistant alt suggestion failed: %v", issue.Element, err))
		return "", warnings
	}
	return text, warnings
}

// substantiveAlt reports whether text is a real improvement over the current
// alt value: non-generic, long enough to describe something, and different
// from what is already there.
func (p *Planner) substantiveAlt(text, current string) bool {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, strings.TrimSpace(current)) {
		return false
	}
	if p.generic[strings.ToLower(text)] {
		return false
	}
	return len(text) >= p.options.MinAltLength
}

// pageContext assembles the text the assistant sees about the page: the
// title followed by the heading texts.
func (p *Planner) pageContext(doc *model.Document, pageNumber int) string {
	if pageNumber < 1 || pageNumber > len(doc.Pages) {
		return ""
	}
	page := doc.Pages[pageNumber-1]

	parts := make([]string, 0, 1+len(page.Headings))
	if page.Title != "" {
		parts = append(parts, page.Title)
	}
	for _, h := range page.Headings {
		if h.Text != "" && h.Text != page.Title {
			parts = append(parts, h.Text)
		}
	}
	return strings.Join(parts, "; ")
}
