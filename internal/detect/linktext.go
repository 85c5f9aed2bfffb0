package detect

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// LinkTextDetector flags links whose visible text does not describe the
// destination: stock phrases like "click here" or a bare URL. Screen reader
// users often navigate by a list of links pulled out of context, so each
// link text has to stand on its own.
type LinkTextDetector struct {
	vaguePhrases map[string]bool
}

// NewLinkTextDetector creates a LinkTextDetector with the given phrase set.
func NewLinkTextDetector(opts Options) *LinkTextDetector {
	phrases := make(map[string]bool, len(opts.VaguePhrases))
	for _, p := range opts.VaguePhrases {
		phrases[strings.ToLower(p)] = true
	}
	return &LinkTextDetector{vaguePhrases: phrases}
}

// Name returns the detector name.
func (d *LinkTextDetector) Name() string {
	return "link_text"
}

// Detect scans the page's links in order. Flagged issues carry up to three
// replacement suggestions derived from the link target and the page's
// heading context, which the remediation planner may apply automatically.
func (d *LinkTextDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue

	for _, link := range page.Links {
		text := strings.ToLower(strings.TrimSpace(link.Text))
		if !d.vaguePhrases[text] && !isBareURL(text) {
			continue
		}

		ref := model.ElementRef{Page: page.Number, Kind: model.KindLink, Index: link.Index}
		issue := model.NewIssue(model.TypeVagueLinkText, ref)
		issue.Description = fmt.Sprintf("Link %d has vague text: %q", link.Index, strings.TrimSpace(link.Text))
		issue.CurrentState = fmt.Sprintf("Link text: %q", strings.TrimSpace(link.Text))
		issue.Suggestions = d.SuggestLinkText(link, page)
		issues = append(issues, issue)
	}
	return issues, nil
}

// isBareURL reports whether the normalized link text is itself a URL.
func isBareURL(text string) bool {
	return strings.HasPrefix(text, "http://") ||
		strings.HasPrefix(text, "https://") ||
		strings.HasPrefix(text, "www.")
}

// SuggestLinkText derives up to three descriptive replacements for a vague
// link: from the last path segment of the target, from the nearest heading
// context, and from the target host. Suggestions that are themselves vague
// or empty are dropped, so the result may be shorter than three.
func (d *LinkTextDetector) SuggestLinkText(link *model.Link, page *model.Page) []string {
	var candidates []string

	if segment := targetSegment(link.Target); segment != "" {
		candidates = append(candidates, "View "+segment)
	}
	if topic := headingContext(page); topic != "" {
		candidates = append(candidates, "Learn more about "+topic)
	}
	if host := targetHost(link.Target); host != "" {
		candidates = append(candidates, "Visit "+host)
	}

	var suggestions []string
	for _, c := range candidates {
		if len(suggestions) == 3 {
			break
		}
		if d.Acceptable(c) {
			suggestions = append(suggestions, c)
		}
	}
	return suggestions
}

// Acceptable reports whether a candidate link text passes the minimum
// quality bar: non-empty and not on the vague-phrase list.
func (d *LinkTextDetector) Acceptable(text string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return false
	}
	return !d.vaguePhrases[normalized] && !isBareURL(normalized)
}

// targetSegment extracts a human-readable name from the last path segment
// of the link target ("/docs/course-syllabus.pdf" -> "course syllabus").
func targetSegment(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	segment := strings.Trim(u.Path, "/")
	if idx := strings.LastIndex(segment, "/"); idx >= 0 {
		segment = segment[idx+1:]
	}
	if idx := strings.LastIndex(segment, "."); idx > 0 {
		segment = segment[:idx]
	}
	segment = strings.NewReplacer("-", " ", "_", " ", "%20", " ").Replace(segment)
	return strings.TrimSpace(segment)
}

// targetHost extracts the host from the link target, without a www prefix.
func targetHost(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// headingContext returns the page's most specific topic text: the first
// heading if present, otherwise the page title.
func headingContext(page *model.Page) string {
	if len(page.Headings) > 0 {
		return strings.TrimSpace(page.Headings[0].Text)
	}
	return strings.TrimSpace(page.Title)
}
