package detect

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// Detector is a single accessibility check. Implementations scan one page
// (with the full document available for context) and return the issues
// found, in element traversal order. Detectors never mutate the model.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows detectors to carry threshold configuration
//  2. It provides a Name() method for logging and selective disabling
//  3. It matches how the rest of the codebase composes behavior
type Detector interface {
	// Name returns the detector's name for logging and configuration.
	Name() string

	// Detect returns the issues found on the page. The returned slice is a
	// finite, restartable sequence: calling Detect again on the same input
	// yields an identical result.
	Detect(ctx context.Context, doc *model.Document, page *model.Page) ([]*model.Issue, error)
}

// Options holds the tunable thresholds shared by the built-in detectors.
// Zero values are replaced by defaults in NewAnalyzer.
type Options struct {
	// GenericAltTokens are alt-text values considered meaningless.
	GenericAltTokens []string

	// MinAltLength is the minimum useful alt-text length in characters.
	MinAltLength int

	// VaguePhrases are link texts that hide the link destination.
	VaguePhrases []string

	// AllCapsMinLength is the minimum text length before an all-caps block
	// is flagged; shorter runs are usually acronyms.
	AllCapsMinLength int

	// FontFloor is the size in points below which text is flagged.
	FontFloor float64

	// FontSevereFloor is the size below which the small-font issue is
	// raised from low to medium severity.
	FontSevereFloor float64

	// Concurrency caps the number of pages analyzed in parallel.
	Concurrency int

	// Disabled lists detector names to skip.
	Disabled []string
}

// Default detector thresholds.
const (
	DefaultMinAltLength     = 5
	DefaultAllCapsMinLength = 11
	DefaultFontFloor        = 12.0
	DefaultFontSevereFloor  = 9.0
	DefaultConcurrency      = 4
)

// DefaultGenericAltTokens returns the denylist of generic alt-text values.
func DefaultGenericAltTokens() []string {
	return []string{"image", "photo", "picture", "graphic", "img"}
}

// DefaultVaguePhrases returns the built-in set of vague link phrases.
func DefaultVaguePhrases() []string {
	return []string{"click here", "here", "read more", "more info", "more", "link", "download"}
}

// DefaultOptions returns the thresholds used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		GenericAltTokens: DefaultGenericAltTokens(),
		MinAltLength:     DefaultMinAltLength,
		VaguePhrases:     DefaultVaguePhrases(),
		AllCapsMinLength: DefaultAllCapsMinLength,
		FontFloor:        DefaultFontFloor,
		FontSevereFloor:  DefaultFontSevereFloor,
		Concurrency:      DefaultConcurrency,
	}
}

// Analyzer runs all registered detectors over a document.
//
// Design decision: We use a coordinator rather than letting callers invoke
// detectors directly because:
//  1. The fixed detector order is an output-stability contract
//  2. Page-level concurrency is handled in one place
//  3. Selective disabling via configuration stays centralized
type Analyzer struct {
	detectors []Detector
	options   Options
}

// NewAnalyzer creates an Analyzer with all built-in detectors registered in
// their fixed order: alt text, link text, heading hierarchy, contrast,
// all caps, small font, table headers.
func NewAnalyzer(opts ...func(*Options)) *Analyzer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.MinAltLength <= 0 {
		options.MinAltLength = DefaultMinAltLength
	}
	if options.AllCapsMinLength <= 0 {
		options.AllCapsMinLength = DefaultAllCapsMinLength
	}
	if options.FontFloor <= 0 {
		options.FontFloor = DefaultFontFloor
	}
	if options.FontSevereFloor <= 0 {
		options.FontSevereFloor = DefaultFontSevereFloor
	}
	if options.Concurrency <= 0 {
		options.Concurrency = DefaultConcurrency
	}
	if len(options.GenericAltTokens) == 0 {
		options.GenericAltTokens = DefaultGenericAltTokens()
	}
	if len(options.VaguePhrases) == 0 {
		options.VaguePhrases = DefaultVaguePhrases()
	}

	a := &Analyzer{options: options}

	disabled := make(map[string]bool, len(options.Disabled))
	for _, name := range options.Disabled {
		disabled[name] = true
	}

	for _, d := range []Detector{
		NewAltTextDetector(options),
		NewLinkTextDetector(options),
		NewHeadingDetector(),
		NewContrastDetector(),
		NewAllCapsDetector(options),
		NewSmallFontDetector(options),
		NewTableHeaderDetector(),
	} {
		if !disabled[d.Name()] {
			a.Register(d)
		}
	}
	return a
}

// Register appends a detector. Order of registration is execution order.
func (a *Analyzer) Register(d Detector) {
	a.detectors = append(a.detectors, d)
}

// Detectors returns the names of the registered detectors in run order.
func (a *Analyzer) Detectors() []string {
	names := make([]string, len(a.detectors))
	for i, d := range a.detectors {
		names[i] = d.Name()
	}
	return names
}

// AnalyzePage runs every detector against one page and returns the issues
// in detector order, each detector's findings in traversal order.
func (a *Analyzer) AnalyzePage(ctx context.Context, doc *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue
	for _, d := range a.detectors {
		select {
		case <-ctx.Done():
			return issues, ctx.Err()
		default:
		}

		found, err := d.Detect(ctx, doc, page)
		if err != nil {
			return issues, err
		}
		issues = append(issues, found...)
	}
	return issues, nil
}

// Analyze checks every page of the document. Pages are analyzed
// concurrently; results land in per-page slots so the aggregate issue order
// is deterministic regardless of scheduling. The page and document issue
// lists are populated as a side effect.
func (a *Analyzer) Analyze(ctx context.Context, doc *model.Document) ([]*model.Issue, error) {
	perPage := make([][]*model.Issue, len(doc.Pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.options.Concurrency)

	for i, page := range doc.Pages {
		g.Go(func() error {
			issues, err := a.AnalyzePage(ctx, doc, page)
			if err != nil {
				return err
			}
			perPage[i] = issues
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*model.Issue
	for i, page := range doc.Pages {
		page.Issues = perPage[i]
		all = append(all, perPage[i]...)
	}
	doc.Issues = all
	return all, nil
}
