package model

import "fmt"

// Document is the normalized in-memory representation of a slide deck or
// similar structured document. It is produced by an external format parser
// and partially mutated by the remediation planner (alt text and link text
// rewrites only).
//
// Design decision: The document is a single owned, mutable structure passed
// by pointer through the pipeline stages in sequence. Detectors treat it as
// read-only; only the remediation step writes to it. This avoids defensive
// copying while keeping mutation confined to one well-known place.
type Document struct {
	// Name identifies the document, typically the source file name.
	Name string `json:"name"`

	// Pages is the ordered sequence of pages (slides).
	Pages []*Page `json:"pages"`

	// Score is the overall accessibility score in [0, 100].
	// Populated by the scoring aggregator.
	Score int `json:"score"`

	// Issues aggregates all issues across pages in detection order.
	// Populated by the detection step.
	Issues []*Issue `json:"issues,omitempty"`
}

// Page is one slide or page of a document. Element slices preserve the
// order in which the parser encountered the elements.
type Page struct {
	// Number is the 1-based page index.
	Number int `json:"number"`

	// Title is the page title, empty if the page has none.
	Title string `json:"title,omitempty"`

	// Images are the non-text elements on the page.
	Images []*Image `json:"images,omitempty"`

	// Links are the hyperlinks on the page.
	Links []*Link `json:"links,omitempty"`

	// Headings are the structural headings on the page, in document order.
	Headings []*Heading `json:"headings,omitempty"`

	// TextBlocks are the plain text runs on the page.
	TextBlocks []*TextBlock `json:"text_blocks,omitempty"`

	// Tables are the data tables on the page.
	Tables []*Table `json:"tables,omitempty"`

	// Score is the page accessibility score in [0, 100].
	Score int `json:"score"`

	// Issues holds the issues detected on this page in traversal order.
	Issues []*Issue `json:"issues,omitempty"`
}

// ElementKind identifies which element variant an ElementRef points at.
type ElementKind string

// Element kinds, matching the variant slices on Page.
const (
	KindImage     ElementKind = "image"
	KindLink      ElementKind = "link"
	KindHeading   ElementKind = "heading"
	KindTextBlock ElementKind = "text"
	KindTable     ElementKind = "table"
)

// ElementRef locates an element inside a document: the 1-based page number,
// the element kind, and the 1-based index within that kind on the page.
type ElementRef struct {
	Page  int         `json:"page"`
	Kind  ElementKind `json:"kind"`
	Index int         `json:"index"`
}

// String renders the reference in a human-readable form, e.g. "slide 3, image 2".
func (r ElementRef) String() string {
	return fmt.Sprintf("slide %d, %s %d", r.Page, r.Kind, r.Index)
}

// Image is a non-text element that needs a textual alternative.
type Image struct {
	// Index is the 1-based position among the images of the page.
	Index int `json:"index"`

	// Source is the parser-supplied reference to the image content
	// (a relation ID, file path, or URL depending on the source format).
	Source string `json:"source,omitempty"`

	// Alt is the alternative text. A nil pointer means the alt attribute is
	// absent; an empty string is an explicit decorative marker and is
	// accepted as correct.
	Alt *string `json:"alt"`

	// Description is an optional parser-supplied hint about the image
	// content, passed as context to the assistant.
	Description string `json:"description,omitempty"`
}

// HasAlt reports whether the image carries any alt attribute at all.
func (i *Image) HasAlt() bool {
	return i.Alt != nil
}

// AltText returns the alt text, or the empty string when absent.
func (i *Image) AltText() string {
	if i.Alt == nil {
		return ""
	}
	return *i.Alt
}

// SetAlt replaces the image alt text. Used by the remediation planner only.
func (i *Image) SetAlt(text string) {
	i.Alt = &text
}

// Link is a hyperlink with visible text and a target.
type Link struct {
	// Index is the 1-based position among the links of the page.
	Index int `json:"index"`

	// Text is the visible link text.
	Text string `json:"text"`

	// Target is the link destination (URL or internal anchor).
	Target string `json:"target,omitempty"`
}

// Heading is a structural heading with a level in [1, 6].
type Heading struct {
	// Index is the 1-based position among the headings of the page.
	Index int `json:"index"`

	// Level is the heading level (1 for h1, etc.).
	Level int `json:"level"`

	// Text is the heading text.
	Text string `json:"text"`
}

// TextBlock is a run of body text with resolved style information.
type TextBlock struct {
	// Index is the 1-based position among the text blocks of the page.
	Index int `json:"index"`

	// Text is the block content.
	Text string `json:"text"`

	// FontSize is the declared font size in points. Zero means unknown.
	FontSize float64 `json:"font_size,omitempty"`

	// Bold reports whether the run is bold, used for the WCAG large-text rule.
	Bold bool `json:"bold,omitempty"`

	// Foreground and Background are the computed colors as hex strings
	// ("#RRGGBB"). Empty means the color is inherited or unknown; such
	// blocks are skipped by the contrast detector rather than flagged.
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
}

// Table is a data table. The parser resolves whether the first row is
// marked up as a header row in the source format.
type Table struct {
	// Index is the 1-based position among the tables of the page.
	Index int `json:"index"`

	// Rows and Columns are the table dimensions.
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// HasHeaderRow reports whether the table declares a header row.
	HasHeaderRow bool `json:"has_header_row"`
}

// Lookup resolves an ElementRef against the document. It returns false when
// the referenced page or element does not exist; callers treat that as a
// broken pipeline invariant, not bad input.
//
// Elements are matched on their parser-assigned Index, not their slice
// position: validation may drop malformed elements, leaving holes in the
// positional numbering of the survivors.
func (d *Document) Lookup(ref ElementRef) (any, bool) {
	if ref.Page < 1 || ref.Page > len(d.Pages) {
		return nil, false
	}
	page := d.Pages[ref.Page-1]

	switch ref.Kind {
	case KindImage:
		for _, el := range page.Images {
			if el.Index == ref.Index {
				return el, true
			}
		}
	case KindLink:
		for _, el := range page.Links {
			if el.Index == ref.Index {
				return el, true
			}
		}
	case KindHeading:
		for _, el := range page.Headings {
			if el.Index == ref.Index {
				return el, true
			}
		}
	case KindTextBlock:
		for _, el := range page.TextBlocks {
			if el.Index == ref.Index {
				return el, true
			}
		}
	case KindTable:
		for _, el := range page.Tables {
			if el.Index == ref.Index {
				return el, true
			}
		}
	}
	return nil, false
}

// Image resolves an ElementRef that is expected to point at an image.
func (d *Document) Image(ref ElementRef) (*Image, bool) {
	el, ok := d.Lookup(ref)
	if !ok {
		return nil, false
	}
	img, ok := el.(*Image)
	return img, ok
}

// Link resolves an ElementRef that is expected to point at a link.
func (d *Document) Link(ref ElementRef) (*Link, bool) {
	el, ok := d.Lookup(ref)
	if !ok {
		return nil, false
	}
	link, ok := el.(*Link)
	return link, ok
}
