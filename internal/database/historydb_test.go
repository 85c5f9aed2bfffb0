package database

import (
	"context"
	"testing"
	"time"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// openTestDB opens a HistoryDB in a temporary directory.
func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := hdb.Close(); err != nil {
			t.Errorf("Close returned error: %v", err)
		}
	})
	return hdb
}

// sampleReport builds a minimal report for history tests.
func sampleReport(document string, score, issues, fixes, manual int) *model.Report {
	return &model.Report{
		DocumentInfo: model.DocumentInfo{
			FileName:     document,
			AnalysisDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			TotalPages:   5,
		},
		ExecutiveSummary: model.ExecutiveSummary{
			OverallScore:       score,
			TotalIssues:        issues,
			FixesApplied:       fixes,
			ManualReviewNeeded: manual,
		},
	}
}

// TestOpenRequiresExisting tests that CreateIfNotExists=false refuses a
// missing database.
func TestOpenRequiresExisting(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.CreateIfNotExists = false

	if _, err := Open(t.TempDir(), opts); err == nil {
		t.Error("expected error opening missing database")
	}
}

// TestSaveAndListRuns tests recording runs and querying them back.
func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	if _, err := hdb.SaveRun(ctx, sampleReport("lecture-03.pptx", 62, 12, 4, 8)); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if _, err := hdb.SaveRun(ctx, sampleReport("lecture-03.pptx", 82, 9, 3, 6)); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if _, err := hdb.SaveRun(ctx, sampleReport("seminar.pptx", 100, 0, 0, 0)); err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	// Filtered by document, newest first.
	runs, err := hdb.ListRuns(ctx, "lecture-03.pptx")
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Score != 82 || runs[1].Score != 62 {
		t.Errorf("runs not newest first: scores %d, %d", runs[0].Score, runs[1].Score)
	}
	if runs[0].TotalIssues != 9 || runs[0].FixesApplied != 3 || runs[0].ManualReview != 6 {
		t.Errorf("summary columns wrong: %+v", runs[0])
	}

	// Unfiltered returns every run.
	all, err := hdb.ListRuns(ctx, "")
	if err != nil {
		t.Fatalf("ListRuns returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 runs, got %d", len(all))
	}
}

// TestLatestRuns tests the bounded newest-first query used by compare.
func TestLatestRuns(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	for _, score := range []int{55, 70, 85} {
		if _, err := hdb.SaveRun(ctx, sampleReport("deck.pptx", score, 10, 2, 8)); err != nil {
			t.Fatalf("SaveRun returned error: %v", err)
		}
	}

	runs, err := hdb.LatestRuns(ctx, "deck.pptx", 2)
	if err != nil {
		t.Fatalf("LatestRuns returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Score != 85 || runs[1].Score != 70 {
		t.Errorf("latest runs = %d, %d", runs[0].Score, runs[1].Score)
	}

	// Fewer stored runs than requested is not an error.
	runs, err = hdb.LatestRuns(ctx, "deck.pptx", 10)
	if err != nil {
		t.Fatalf("LatestRuns returned error: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 runs, got %d", len(runs))
	}
}

// TestGetRunReport tests loading the full report back by run ID.
func TestGetRunReport(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	id, err := hdb.SaveRun(ctx, sampleReport("deck.pptx", 82, 9, 3, 6))
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}

	report, err := hdb.GetRunReport(ctx, id)
	if err != nil {
		t.Fatalf("GetRunReport returned error: %v", err)
	}
	if report == nil {
		t.Fatal("expected report, got nil")
	}
	if report.DocumentInfo.FileName != "deck.pptx" || report.ExecutiveSummary.OverallScore != 82 {
		t.Errorf("report round trip lost fields: %+v", report)
	}

	// Unknown ID returns nil without error.
	report, err = hdb.GetRunReport(ctx, id+100)
	if err != nil {
		t.Fatalf("GetRunReport returned error: %v", err)
	}
	if report != nil {
		t.Error("expected nil report for unknown ID")
	}
}

// TestListDocuments tests the distinct-document listing.
func TestListDocuments(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)
	ctx := context.Background()

	for _, doc := range []string{"b.pptx", "a.pptx", "b.pptx"} {
		if _, err := hdb.SaveRun(ctx, sampleReport(doc, 90, 2, 1, 1)); err != nil {
			t.Fatalf("SaveRun returned error: %v", err)
		}
	}

	docs, err := hdb.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments returned error: %v", err)
	}
	if len(docs) != 2 || docs[0] != "a.pptx" || docs[1] != "b.pptx" {
		t.Errorf("documents = %v", docs)
	}
}

// TestSaveRunNilReport tests the nil-report guard.
func TestSaveRunNilReport(t *testing.T) {
	t.Parallel()

	hdb := openTestDB(t)

	if _, err := hdb.SaveRun(context.Background(), nil); err == nil {
		t.Error("expected error for nil report")
	}
}
