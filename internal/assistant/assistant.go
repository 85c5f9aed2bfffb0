package assistant

import (
	"context"
	"errors"
)

// Assistant is the capability contract for the external generation service.
// Implementations must be safe for concurrent use.
type Assistant interface {
	// SuggestAltText returns descriptive alternative text for an image.
	// imageRef identifies the image for the service (source path or
	// parser-supplied description); pageContext carries the surrounding
	// slide text so the suggestion fits the content.
	SuggestAltText(ctx context.Context, imageRef, pageContext string) (string, error)

	// SuggestLinkText returns descriptive visible text for a link, given
	// its target and the surrounding page context.
	SuggestLinkText(ctx context.Context, linkTarget, pageContext string) (string, error)
}

// Sentinel errors shared by implementations.
var (
	// ErrUnavailable means the service could not be reached at all.
	ErrUnavailable = errors.New("assistant unavailable")

	// ErrEmptySuggestion means the service responded with no usable text.
	ErrEmptySuggestion = errors.New("assistant returned an empty suggestion")
)
