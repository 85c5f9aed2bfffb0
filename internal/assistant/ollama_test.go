package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestServer runs an Ollama-shaped endpoint whose handler decides each
// response, and returns a client pointed at it.
func newTestServer(t *testing.T, handler http.HandlerFunc) (*Ollama, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	host := strings.TrimPrefix(server.URL, "http://")
	client := NewOllama(host,
		WithMaxRetries(2),
		WithBackoff(time.Millisecond),
		WithRequestTimeout(time.Second),
	)
	return client, server
}

// TestOllamaSuggestAltText tests a successful round trip.
func TestOllamaSuggestAltText(t *testing.T) {
	t.Parallel()

	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, expected /api/generate", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream should be false")
		}
		if req.Model != DefaultModel {
			t.Errorf("model = %q, expected %q", req.Model, DefaultModel)
		}
		json.NewEncoder(w).Encode(generateResponse{ //nolint:errcheck,gosec
			Response: `"Bar chart of fall enrollment by college"`,
		})
	})

	got, err := client.SuggestAltText(context.Background(), "chart.png", "Enrollment Trends")
	if err != nil {
		t.Fatalf("SuggestAltText returned error: %v", err)
	}
	if expected := "Bar chart of fall enrollment by college"; got != expected {
		t.Errorf("suggestion = %q, expected %q", got, expected)
	}
}

// TestOllamaRetriesThenSucceeds tests that a transient failure is retried.
func TestOllamaRetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	calls := 0
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "Campus map"}) //nolint:errcheck,gosec
	})

	got, err := client.SuggestAltText(context.Background(), "map.png", "")
	if err != nil {
		t.Fatalf("SuggestAltText returned error: %v", err)
	}
	if got != "Campus map" {
		t.Errorf("suggestion = %q", got)
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}

// TestOllamaUnavailable tests that exhausted retries yield ErrUnavailable.
func TestOllamaUnavailable(t *testing.T) {
	t.Parallel()

	calls := 0
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.SuggestLinkText(context.Background(), "https://example.edu", "")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("error = %v, expected ErrUnavailable", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, expected 2", calls)
	}
}

// TestOllamaEmptyResponse tests that a blank model answer is rejected.
func TestOllamaEmptyResponse(t *testing.T) {
	t.Parallel()

	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "   "}) //nolint:errcheck,gosec
	})

	_, err := client.SuggestAltText(context.Background(), "logo.png", "")
	if err == nil {
		t.Fatal("expected error for empty suggestion")
	}
}

// TestOllamaCancelled tests that a cancelled context aborts without retries.
func TestOllamaCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "unused"}) //nolint:errcheck,gosec
	})

	if _, err := client.SuggestAltText(ctx, "x.png", ""); err == nil {
		t.Error("expected error from cancelled context")
	}
}

// TestCleanSuggestion tests response normalization.
func TestCleanSuggestion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Campus aerial view", "Campus aerial view"},
		{"wrapping quotes", `"Campus aerial view"`, "Campus aerial view"},
		{"alt text prefix", "Alt text: Campus aerial view", "Campus aerial view"},
		{"link text prefix", "Link text: Course syllabus", "Course syllabus"},
		{"whitespace", "  Campus aerial view \n", "Campus aerial view"},
		{"empty", "   ", ""},
		{"over length", strings.Repeat("a", 400), ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := CleanSuggestion(tc.input); got != tc.expected {
				t.Errorf("CleanSuggestion(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestStubDeterminism tests canned responses and call counting.
func TestStubDeterminism(t *testing.T) {
	t.Parallel()

	stub := &Stub{
		AltResponses: map[string]string{"chart.png": "Enrollment bar chart"},
		Default:      "Generated description",
	}

	got, err := stub.SuggestAltText(context.Background(), "chart.png", "")
	if err != nil {
		t.Fatalf("SuggestAltText returned error: %v", err)
	}
	if got != "Enrollment bar chart" {
		t.Errorf("suggestion = %q", got)
	}

	got, err = stub.SuggestAltText(context.Background(), "unknown.png", "")
	if err != nil {
		t.Fatalf("SuggestAltText returned error: %v", err)
	}
	if got != "Generated description" {
		t.Errorf("fallback = %q", got)
	}
	if stub.AltCalls() != 2 {
		t.Errorf("AltCalls = %d, expected 2", stub.AltCalls())
	}

	stub.Err = errors.New("boom")
	if _, err := stub.SuggestLinkText(context.Background(), "https://example.edu", ""); err == nil {
		t.Error("expected injected error")
	}
	if stub.LinkCalls() != 1 {
		t.Errorf("LinkCalls = %d, expected 1", stub.LinkCalls())
	}
}
