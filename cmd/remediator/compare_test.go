package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/database"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare <document>" {
			t.Errorf("expected use 'compare <document>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has json flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("json")
		if flag == nil {
			t.Fatal("expected json flag")
		}
		if flag.Shorthand != "j" {
			t.Errorf("expected shorthand 'j', got %q", flag.Shorthand)
		}
	})
}

// TestCompareRuns tests comparison generation from two run records.
func TestCompareRuns(t *testing.T) {
	t.Parallel()

	previousDate := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	currentDate := time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name              string
		previous, current database.RunRecord
		expectedScore     int
		expectedIssues    int
		expectedManual    int
		expectedDirection string
	}{
		{
			name:              "improved score",
			previous:          database.RunRecord{Document: "deck.pptx", Timestamp: previousDate, Score: 62, TotalIssues: 12, FixesApplied: 4, ManualReview: 8},
			current:           database.RunRecord{Document: "deck.pptx", Timestamp: currentDate, Score: 85, TotalIssues: 2, FixesApplied: 2, ManualReview: 1},
			expectedScore:     23,
			expectedIssues:    -10,
			expectedManual:    -7,
			expectedDirection: scoreDirectionImproved,
		},
		{
			name:              "declined score",
			previous:          database.RunRecord{Document: "deck.pptx", Timestamp: previousDate, Score: 90, TotalIssues: 1, ManualReview: 1},
			current:           database.RunRecord{Document: "deck.pptx", Timestamp: currentDate, Score: 70, TotalIssues: 5, ManualReview: 5},
			expectedScore:     -20,
			expectedIssues:    4,
			expectedManual:    4,
			expectedDirection: scoreDirectionDeclined,
		},
		{
			name:              "unchanged score",
			previous:          database.RunRecord{Document: "deck.pptx", Timestamp: previousDate, Score: 85, TotalIssues: 2, ManualReview: 1},
			current:           database.RunRecord{Document: "deck.pptx", Timestamp: currentDate, Score: 85, TotalIssues: 2, ManualReview: 1},
			expectedDirection: scoreDirectionUnchanged,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := compareRuns(tc.previous, tc.current)

			if result.Document != "deck.pptx" {
				t.Errorf("expected document 'deck.pptx', got %q", result.Document)
			}
			if result.ScoreDelta != tc.expectedScore {
				t.Errorf("ScoreDelta = %d, expected %d", result.ScoreDelta, tc.expectedScore)
			}
			if result.IssuesDelta != tc.expectedIssues {
				t.Errorf("IssuesDelta = %d, expected %d", result.IssuesDelta, tc.expectedIssues)
			}
			if result.ManualDelta != tc.expectedManual {
				t.Errorf("ManualDelta = %d, expected %d", result.ManualDelta, tc.expectedManual)
			}
			if result.Direction != tc.expectedDirection {
				t.Errorf("Direction = %q, expected %q", result.Direction, tc.expectedDirection)
			}
			if !result.PreviousRun.Date.Equal(previousDate) || !result.CurrentRun.Date.Equal(currentDate) {
				t.Error("run dates not carried into summaries")
			}
		})
	}
}

// TestRunComparison tests the comparison flow against a seeded database.
func TestRunComparison(t *testing.T) {
	t.Parallel()

	t.Run("errors with no history", func(t *testing.T) {
		t.Parallel()

		db := openHistoryTestDB(t)

		var buf bytes.Buffer
		err := runComparison(context.Background(), db, "absent.pptx", false, &buf)
		if err == nil {
			t.Fatal("expected error for missing history")
		}
		if !strings.Contains(err.Error(), "no analysis history found for absent.pptx") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("errors with a single run", func(t *testing.T) {
		t.Parallel()

		db := openHistoryTestDB(t, historyReport("deck.pptx", 85, 2, 2, 1))

		var buf bytes.Buffer
		err := runComparison(context.Background(), db, "deck.pptx", false, &buf)
		if err == nil {
			t.Fatal("expected error for single run")
		}
		if !strings.Contains(err.Error(), "at least 2 runs are required for comparison (found 1)") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("compares latest two runs as text", func(t *testing.T) {
		t.Parallel()

		// Seed order is oldest first; SaveRun IDs break timestamp ties.
		db := openHistoryTestDB(t,
			historyReport("deck.pptx", 62, 12, 4, 8),
			historyReport("deck.pptx", 85, 2, 2, 1),
		)

		var buf bytes.Buffer
		if err := runComparison(context.Background(), db, "deck.pptx", false, &buf); err != nil {
			t.Fatalf("runComparison returned error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Run Comparison: deck.pptx") {
			t.Errorf("missing header: %q", output)
		}
		if !strings.Contains(output, "IMPROVED (score increased)") {
			t.Errorf("missing direction: %q", output)
		}
		if !strings.Contains(output, "+23") {
			t.Errorf("missing score delta: %q", output)
		}
		if !strings.Contains(output, "-10") {
			t.Errorf("missing issues delta: %q", output)
		}
	})

	t.Run("compares latest two runs as json", func(t *testing.T) {
		t.Parallel()

		db := openHistoryTestDB(t,
			historyReport("deck.pptx", 62, 12, 4, 8),
			historyReport("deck.pptx", 85, 2, 2, 1),
		)

		var buf bytes.Buffer
		if err := runComparison(context.Background(), db, "deck.pptx", true, &buf); err != nil {
			t.Fatalf("runComparison returned error: %v", err)
		}

		var result ComparisonResult
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}
		if result.Document != "deck.pptx" {
			t.Errorf("expected document 'deck.pptx', got %q", result.Document)
		}
		if result.ScoreDelta != 23 {
			t.Errorf("ScoreDelta = %d, expected 23", result.ScoreDelta)
		}
		if result.Direction != scoreDirectionImproved {
			t.Errorf("Direction = %q, expected %q", result.Direction, scoreDirectionImproved)
		}
		if result.CurrentRun.Score != 85 || result.PreviousRun.Score != 62 {
			t.Errorf("run scores = %d/%d, expected 85/62",
				result.CurrentRun.Score, result.PreviousRun.Score)
		}
	})
}

// TestFormatScoreDirection tests direction formatting.
func TestFormatScoreDirection(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		direction string
		expected  string
	}{
		{scoreDirectionImproved, "IMPROVED (score increased)"},
		{scoreDirectionDeclined, "DECLINED (score decreased)"},
		{scoreDirectionUnchanged, "UNCHANGED"},
	}

	for _, tc := range testCases {
		t.Run(tc.direction, func(t *testing.T) {
			t.Parallel()

			if got := formatScoreDirection(tc.direction); got != tc.expected {
				t.Errorf("formatScoreDirection(%q) = %q, expected %q", tc.direction, got, tc.expected)
			}
		})
	}
}

// TestFormatDelta tests signed delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		delta    int
		expected string
	}{
		{"positive", 23, "+23"},
		{"negative", -10, "-10"},
		{"zero", 0, "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := formatDelta(tc.delta); got != tc.expected {
				t.Errorf("formatDelta(%d) = %q, expected %q", tc.delta, got, tc.expected)
			}
		})
	}
}
