package assistant

import (
	"context"
	"sync"
)

// Stub is a deterministic Assistant for tests and offline runs. It answers
// from fixed maps keyed by the image reference or link target, falling back
// to a default response, and counts every call.
type Stub struct {
	mu sync.Mutex

	// AltResponses maps imageRef to a canned alt-text suggestion.
	AltResponses map[string]string

	// LinkResponses maps linkTarget to a canned link-text suggestion.
	LinkResponses map[string]string

	// Default is returned when no canned response matches and Err is nil.
	// An empty Default yields ErrEmptySuggestion.
	Default string

	// Err, when set, is returned from every call.
	Err error

	altCalls  int
	linkCalls int
}

var _ Assistant = (*Stub)(nil)

// SuggestAltText returns the canned response for imageRef.
func (s *Stub) SuggestAltText(ctx context.Context, imageRef, pageContext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.altCalls++

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	if text, ok := s.AltResponses[imageRef]; ok {
		return text, nil
	}
	if s.Default == "" {
		return "", ErrEmptySuggestion
	}
	return s.Default, nil
}

// SuggestLinkText returns the canned response for linkTarget.
func (s *Stub) SuggestLinkText(ctx context.Context, linkTarget, pageContext string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linkCalls++

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	if text, ok := s.LinkResponses[linkTarget]; ok {
		return text, nil
	}
	if s.Default == "" {
		return "", ErrEmptySuggestion
	}
	return s.Default, nil
}

// AltCalls reports how many alt-text suggestions were requested.
func (s *Stub) AltCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.altCalls
}

// LinkCalls reports how many link-text suggestions were requested.
func (s *Stub) LinkCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linkCalls
}
