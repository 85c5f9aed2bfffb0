package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// TestValidateStepRejectsBrokenStructure tests fatal structural errors.
func TestValidateStepRejectsBrokenStructure(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		doc  *model.Document
	}{
		{"nil document", nil},
		{"unnamed document", &model.Document{Pages: []*model.Page{{Number: 1}}}},
		{"nil page", &model.Document{Name: "deck.pptx", Pages: []*model.Page{nil}}},
		{"misnumbered page", &model.Document{Name: "deck.pptx", Pages: []*model.Page{{Number: 3}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			run := &Run{Document: tc.doc, Log: &model.RemediationLog{}}
			err := NewValidateStep().Do(context.Background(), run)
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("error = %v, expected ErrInvalidDocument", err)
			}
		})
	}
}

// TestValidateStepDropsMalformedElements tests that broken elements are
// skipped with a warning instead of failing the run.
func TestValidateStepDropsMalformedElements(t *testing.T) {
	t.Parallel()

	doc := &model.Document{
		Name: "deck.pptx",
		Pages: []*model.Page{
			{
				Number: 1,
				Headings: []*model.Heading{
					{Index: 1, Level: 1, Text: "Intro"},
					{Index: 2, Level: 9, Text: "Broken"},
				},
				TextBlocks: []*model.TextBlock{
					{Index: 1, Text: "fine"},
					{Index: 2, Text: "broken", FontSize: -4},
				},
				Tables: []*model.Table{
					{Index: 1, Rows: -1, Columns: 2},
				},
			},
		},
	}

	run := NewRun(doc)
	if err := NewValidateStep().Do(context.Background(), run); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}

	if len(run.Warnings) != 3 {
		t.Errorf("got %d warnings, expected 3: %v", len(run.Warnings), run.Warnings)
	}
	if len(doc.Pages[0].Headings) != 1 {
		t.Errorf("headings remaining = %d, expected 1", len(doc.Pages[0].Headings))
	}
	if len(doc.Pages[0].TextBlocks) != 1 {
		t.Errorf("text blocks remaining = %d, expected 1", len(doc.Pages[0].TextBlocks))
	}
	if len(doc.Pages[0].Tables) != 0 {
		t.Errorf("tables remaining = %d, expected 0", len(doc.Pages[0].Tables))
	}
}

// TestDefaultPipelineStepOrder tests the fixed step sequence.
func TestDefaultPipelineStepOrder(t *testing.T) {
	t.Parallel()

	p := DefaultPipeline()
	expected := []string{"validate", "detect", "remediate", "score", "report"}

	got := p.StepNames()
	if len(got) != len(expected) {
		t.Fatalf("got %d steps, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("step %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}
