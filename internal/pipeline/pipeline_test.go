package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/assistant"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/remedy"
)

// fixtureDocument builds a five-slide lecture deck exercising every
// detector and all three remediation outcomes (substantive fix, placeholder
// fix, manual review).
func fixtureDocument() *model.Document {
	poorAlt := "image"
	return &model.Document{
		Name: "lecture-05.pptx",
		Pages: []*model.Page{
			{
				Number: 1,
				Title:  "Welcome",
				Images: []*model.Image{{Index: 1, Source: "decor.png"}},
				Headings: []*model.Heading{
					{Index: 1, Level: 1, Text: "Welcome"},
					{Index: 2, Level: 3, Text: "Agenda"},
				},
			},
			{
				Number: 2,
				Title:  "Deadlines",
				TextBlocks: []*model.TextBlock{
					{Index: 1, Text: "ALL ASSIGNMENTS DUE FRIDAY"},
				},
			},
			{
				Number: 3,
				Title:  "Readings",
				Links: []*model.Link{
					{Index: 1, Text: "click here", Target: "https://example.edu/docs/reading-list.pdf"},
				},
				Tables: []*model.Table{{Index: 1, Rows: 4, Columns: 3}},
			},
			{
				Number: 4,
				Title:  "Logistics",
				Images: []*model.Image{{Index: 1, Source: "photo1.png", Alt: &poorAlt}},
				TextBlocks: []*model.TextBlock{
					{Index: 1, Text: "Office hours Tuesday 2-4pm", FontSize: 14, Foreground: "#808080", Background: "#ffffff"},
				},
			},
			{
				Number: 5,
				Title:  "Enrollment",
				Images: []*model.Image{{Index: 1, Source: "growth-chart.png"}},
				TextBlocks: []*model.TextBlock{
					{Index: 1, Text: "REGISTER FOR SPRING CLASSES"},
				},
			},
		},
	}
}

// fixturePipeline wires the fixture assistant: one canned alt response,
// errors for everything else.
func fixturePipeline() *Pipeline {
	stub := &assistant.Stub{
		AltResponses: map[string]string{
			"growth-chart.png": "Line chart of enrollment growth from 2020 to 2025",
		},
	}
	return DefaultPipeline(
		WithPipelinePlanner(remedy.NewPlanner(remedy.WithAssistant(stub))),
		WithPipelineClock(func() time.Time {
			return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		}),
	)
}

// TestPipelineEndToEnd tests the full analysis of the fixture deck: issue
// count, fix count, and the resulting scores.
func TestPipelineEndToEnd(t *testing.T) {
	t.Parallel()

	run := NewRun(fixtureDocument())
	if err := fixturePipeline().Execute(context.Background(), run); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	doc := run.Document
	if len(doc.Issues) != 9 {
		t.Errorf("detected %d issues, expected 9", len(doc.Issues))
	}
	if run.Log.Len() != 3 {
		t.Errorf("applied %d fixes, expected 3", run.Log.Len())
	}
	if doc.Score != 82 {
		t.Errorf("document score = %d, expected 82", doc.Score)
	}

	expectedPageScores := []int{73, 88, 88, 76, 88}
	for i, expected := range expectedPageScores {
		if doc.Pages[i].Score != expected {
			t.Errorf("page %d score = %d, expected %d", i+1, doc.Pages[i].Score, expected)
		}
	}

	// Slide 1: missing alt got the placeholder and stays on the worklist.
	if got := doc.Pages[0].Images[0].AltText(); got != remedy.PlaceholderAltText {
		t.Errorf("slide 1 alt = %q, expected placeholder", got)
	}
	// Slide 3: the vague link was rewritten from the detector suggestion.
	if got := doc.Pages[2].Links[0].Text; got != "View reading list" {
		t.Errorf("slide 3 link text = %q", got)
	}
	// Slide 4: poor alt text is untouched, left for a human.
	if got := doc.Pages[3].Images[0].AltText(); got != "image" {
		t.Errorf("slide 4 alt = %q, expected unchanged", got)
	}
	// Slide 5: the assistant suggestion was applied.
	if got := doc.Pages[4].Images[0].AltText(); got != "Line chart of enrollment growth from 2020 to 2025" {
		t.Errorf("slide 5 alt = %q", got)
	}

	if run.Report == nil {
		t.Fatal("run has no report")
	}
	summary := run.Report.ExecutiveSummary
	if summary.OverallScore != 82 || summary.TotalIssues != 9 || summary.FixesApplied != 3 {
		t.Errorf("executive summary = %+v", summary)
	}
	if summary.ManualReviewNeeded != 7 {
		t.Errorf("ManualReviewNeeded = %d, expected 7", summary.ManualReviewNeeded)
	}
	if len(run.Warnings) == 0 {
		t.Error("expected assistant-fallback warnings")
	}
}

// TestPipelineDeterminism tests that repeated runs over fresh copies of the
// same input produce identical reports.
func TestPipelineDeterminism(t *testing.T) {
	t.Parallel()

	execute := func() *Run {
		run := NewRun(fixtureDocument())
		if err := fixturePipeline().Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		return run
	}

	first := execute()
	for range 3 {
		again := execute()
		if again.Document.Score != first.Document.Score {
			t.Errorf("score changed across runs: %d vs %d", again.Document.Score, first.Document.Score)
		}
		if again.Log.Len() != first.Log.Len() {
			t.Errorf("fix count changed across runs: %d vs %d", again.Log.Len(), first.Log.Len())
		}
		if len(again.Document.Issues) != len(first.Document.Issues) {
			t.Fatalf("issue count changed: %d vs %d", len(again.Document.Issues), len(first.Document.Issues))
		}
		for i := range first.Document.Issues {
			a, b := first.Document.Issues[i], again.Document.Issues[i]
			if a.Type != b.Type || a.Element != b.Element || a.Status != b.Status {
				t.Fatalf("issue %d differs: %+v vs %+v", i, a, b)
			}
		}
	}
}

// TestPipelineRerunAppliesNothing tests that analyzing an already-remediated
// document applies no further changes.
func TestPipelineRerunAppliesNothing(t *testing.T) {
	t.Parallel()

	doc := fixtureDocument()
	first := NewRun(doc)
	if err := fixturePipeline().Execute(context.Background(), first); err != nil {
		t.Fatalf("first Execute returned error: %v", err)
	}

	altSlide5 := doc.Pages[4].Images[0].AltText()
	linkSlide3 := doc.Pages[2].Links[0].Text

	second := NewRun(doc)
	if err := fixturePipeline().Execute(context.Background(), second); err != nil {
		t.Fatalf("second Execute returned error: %v", err)
	}

	if second.Log.Len() != 0 {
		t.Errorf("second run applied %d fixes, expected 0", second.Log.Len())
	}
	if doc.Pages[4].Images[0].AltText() != altSlide5 {
		t.Error("slide 5 alt text changed on re-run")
	}
	if doc.Pages[2].Links[0].Text != linkSlide3 {
		t.Error("slide 3 link text changed on re-run")
	}
}

// TestPipelineSurvivesDroppedElement tests that a malformed element dropped
// by validation stays a warning even when a later element on the same page
// is flagged: the later element's issue must still resolve in the report.
func TestPipelineSurvivesDroppedElement(t *testing.T) {
	t.Parallel()

	doc := &model.Document{
		Name: "lecture-07.pptx",
		Pages: []*model.Page{
			{
				Number: 1,
				Title:  "Outline",
				Headings: []*model.Heading{
					{Index: 1, Level: 1, Text: "Outline"},
					{Index: 2, Level: 9, Text: "Broken"},
					{Index: 3, Level: 4, Text: "Details"},
				},
			},
		},
	}

	run := NewRun(doc)
	if err := DefaultPipeline().Execute(context.Background(), run); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	if run.Report == nil {
		t.Fatal("run has no report")
	}
	if len(run.Warnings) != 1 {
		t.Errorf("got %d warnings, expected 1: %v", len(run.Warnings), run.Warnings)
	}

	var hierarchy *model.Issue
	for _, issue := range doc.Issues {
		if issue.Type == model.TypeHeadingHierarchy {
			hierarchy = issue
		}
	}
	if hierarchy == nil {
		t.Fatal("expected a heading hierarchy issue on the surviving heading")
	}
	if hierarchy.Element.Index != 3 {
		t.Errorf("issue references heading %d, expected 3", hierarchy.Element.Index)
	}
	if _, ok := doc.Lookup(hierarchy.Element); !ok {
		t.Errorf("issue reference %v does not resolve", hierarchy.Element)
	}
}

// TestPipelineAllOrNothing tests that a failing step aborts the run without
// a report.
func TestPipelineAllOrNothing(t *testing.T) {
	t.Parallel()

	doc := fixtureDocument()
	doc.Pages[1].Number = 7 // broken numbering trips validation

	run := NewRun(doc)
	err := DefaultPipeline().Execute(context.Background(), run)
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("error = %v, expected ErrInvalidDocument", err)
	}
	if run.Report != nil {
		t.Error("aborted run should carry no report")
	}
}

// TestPipelineCancellation tests that a cancelled context stops execution.
func TestPipelineCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := NewRun(fixtureDocument())
	if err := DefaultPipeline().Execute(ctx, run); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, expected context.Canceled", err)
	}
}
