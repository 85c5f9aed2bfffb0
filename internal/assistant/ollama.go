package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Default client settings. Local model inference is slow but bounded; the
// retry budget is deliberately small because the planner has a placeholder
// fallback and must not stall the pipeline.
const (
	// DefaultHost is the standard Ollama listen address.
	DefaultHost = "localhost:11434"

	// DefaultModel is the generation model requested by default.
	DefaultModel = "llama3.1:8b"

	// DefaultRequestTimeout bounds a single generation request.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts per suggestion.
	DefaultMaxRetries = 3

	// DefaultBackoff is the initial delay between attempts; it doubles
	// after each failure.
	DefaultBackoff = 500 * time.Millisecond

	// maxSuggestionLength caps accepted suggestions. Anything longer is a
	// model rambling, not alt text.
	maxSuggestionLength = 300
)

// Ollama is an Assistant backed by an Ollama-compatible HTTP API.
type Ollama struct {
	host    string
	model   string
	client  *http.Client
	retries int
	backoff time.Duration
	logger  *slog.Logger
}

// OllamaOption configures an Ollama client.
type OllamaOption func(*Ollama)

// WithModel sets the generation model name.
func WithModel(model string) OllamaOption {
	return func(o *Ollama) {
		if model != "" {
			o.model = model
		}
	}
}

// WithRequestTimeout sets the per-request timeout.
func WithRequestTimeout(d time.Duration) OllamaOption {
	return func(o *Ollama) {
		if d > 0 {
			o.client.Timeout = d
		}
	}
}

// WithMaxRetries sets the number of attempts per suggestion.
func WithMaxRetries(n int) OllamaOption {
	return func(o *Ollama) {
		if n > 0 {
			o.retries = n
		}
	}
}

// WithBackoff sets the initial retry delay.
func WithBackoff(d time.Duration) OllamaOption {
	return func(o *Ollama) {
		if d > 0 {
			o.backoff = d
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) OllamaOption {
	return func(o *Ollama) {
		o.logger = logger
	}
}

// NewOllama creates an Ollama client for the given "host:port" address.
func NewOllama(host string, opts ...OllamaOption) *Ollama {
	if host == "" {
		host = DefaultHost
	}
	o := &Ollama{
		host:    strings.TrimSuffix(host, "/"),
		model:   DefaultModel,
		client:  &http.Client{Timeout: DefaultRequestTimeout},
		retries: DefaultMaxRetries,
		backoff: DefaultBackoff,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// generateRequest is the Ollama /api/generate request body.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse is the subset of the Ollama response we consume.
type generateResponse struct {
	Response string `json:"response"`
}

// SuggestAltText asks the model for alternative text for an image.
func (o *Ollama) SuggestAltText(ctx context.Context, imageRef, pageContext string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a WCAG 2.1 accessibility expert. Write concise, descriptive alt text "+
			"(one sentence, no leading \"Image of\") for the following image.\n"+
			"Image: %s\nSlide context: %s\n"+
			"Respond with the alt text only.",
		imageRef, pageContext)
	return o.generate(ctx, prompt)
}

// SuggestLinkText asks the model for descriptive link text.
func (o *Ollama) SuggestLinkText(ctx context.Context, linkTarget, pageContext string) (string, error) {
	prompt := fmt.Sprintf(
		"You are a WCAG 2.1 accessibility expert. Write short, descriptive visible text "+
			"for a hyperlink so its destination is clear out of context.\n"+
			"Link target: %s\nSlide context: %s\n"+
			"Respond with the link text only.",
		linkTarget, pageContext)
	return o.generate(ctx, prompt)
}

// generate performs the HTTP call with bounded retries and exponential
// backoff. It returns ErrUnavailable (wrapped) when every attempt fails and
// ErrEmptySuggestion when the model answers with nothing usable.
func (o *Ollama) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	delay := o.backoff

	for attempt := 1; attempt <= o.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		text, err := o.attempt(ctx, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		o.logger.Debug("assistant request failed",
			"attempt", attempt,
			"retries", o.retries,
			"error", err,
		)
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

// attempt performs a single generation request.
func (o *Ollama) attempt(ctx context.Context, body []byte) (string, error) {
	url := "http://" + o.host + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := CleanSuggestion(parsed.Response)
	if text == "" {
		return "", ErrEmptySuggestion
	}
	return text, nil
}

// CleanSuggestion normalizes a model response into plain suggestion text:
// whitespace and wrapping quotes are stripped, common answer prefixes are
// removed, and over-long responses are rejected as unusable.
func CleanSuggestion(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)

	for _, prefix := range []string{"alt text:", "alt-text:", "link text:", "suggestion:"} {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
	}

	if len(text) > maxSuggestionLength {
		return ""
	}
	return strings.TrimSpace(text)
}
