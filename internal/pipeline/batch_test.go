package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// TestProcessBatch tests concurrent analysis of several documents with one
// failing load.
func TestProcessBatch(t *testing.T) {
	t.Parallel()

	docs := map[string]*model.Document{
		"deck-a.pptx": fixtureDocument(),
		"deck-b.pptx": {Name: "deck-b.pptx", Pages: []*model.Page{{Number: 1, Title: "Clean"}}},
	}
	loader := func(path string) (*model.Document, error) {
		doc, ok := docs[path]
		if !ok {
			return nil, fmt.Errorf("open %s: no such file", path)
		}
		return doc, nil
	}

	bp := NewBatchProcessor(fixturePipeline, loader, WithConcurrency(2))

	paths := []string{"deck-a.pptx", "missing.pptx", "deck-b.pptx"}
	results, err := bp.ProcessBatch(context.Background(), paths)
	if err != nil {
		t.Fatalf("ProcessBatch returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, expected 3", len(results))
	}

	// Results keep input order.
	for i, path := range paths {
		if results[i].Path != path {
			t.Errorf("result %d path = %q, expected %q", i, results[i].Path, path)
		}
	}

	if results[0].Err != nil || results[0].Run == nil || results[0].Run.Report == nil {
		t.Errorf("deck-a result = %+v", results[0])
	}
	if results[0].Run.Document.Score != 82 {
		t.Errorf("deck-a score = %d, expected 82", results[0].Run.Document.Score)
	}

	if results[1].Err == nil {
		t.Error("missing document should carry an error")
	}
	if results[1].Run != nil {
		t.Error("failed load should carry no run")
	}

	if results[2].Err != nil || results[2].Run.Document.Score != 100 {
		t.Errorf("deck-b result = %+v", results[2])
	}
}

// TestProcessBatchCancelled tests that cancellation aborts the batch.
func TestProcessBatchCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := func(string) (*model.Document, error) {
		return fixtureDocument(), nil
	}
	bp := NewBatchProcessor(fixturePipeline, loader)

	if _, err := bp.ProcessBatch(ctx, []string{"a.pptx", "b.pptx"}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, expected context.Canceled", err)
	}
}
