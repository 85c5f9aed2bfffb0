package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/config"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/database"
)

// Constants for score direction messages.
const (
	scoreDirectionImproved  = "improved"
	scoreDirectionDeclined  = "declined"
	scoreDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares the two most recent runs for a document.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <document>",
		Short: "Compare the two most recent runs for a document",
		Long: `Compare shows the accessibility score delta between the two most recent
analysis runs for a document, along with changes in issue, fix, and
manual-review counts.

The comparison requires at least two recorded runs for the document.
Use 'remediator analyze' to record runs and 'remediator history' to see
what is stored.

Examples:
  # Compare the latest two runs for a document
  remediator compare lecture-03.pptx

  # Output the comparison in JSON format
  remediator compare --json lecture-03.pptx`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Use XDG data directory for database
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return runComparison(context.Background(), db, args[0], jsonOutput, cmd.OutOrStdout())
}

// runComparison loads the two most recent runs and outputs the comparison.
func runComparison(ctx context.Context, db *database.HistoryDB, document string, jsonOutput bool, w io.Writer) error {
	runs, err := db.LatestRuns(ctx, document, 2)
	if err != nil {
		return fmt.Errorf("failed to get run history: %w", err)
	}

	if len(runs) == 0 {
		return fmt.Errorf("no analysis history found for %s", document)
	}
	if len(runs) < 2 {
		return fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
	}

	// LatestRuns is newest first
	comparison := compareRuns(runs[1], runs[0])

	if jsonOutput {
		return outputComparisonJSON(comparison, w)
	}
	return outputComparisonText(comparison, w)
}

// ComparisonResult holds the result of comparing two analysis runs.
type ComparisonResult struct {
	// Document is the analyzed document name.
	Document string `json:"document"`

	// PreviousRun summarizes the older of the two runs.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun summarizes the newer of the two runs.
	CurrentRun RunSummary `json:"current_run"`

	// ScoreDelta is the change in overall score (positive is better).
	ScoreDelta int `json:"score_delta"`

	// IssuesDelta is the change in detected issue count.
	IssuesDelta int `json:"issues_delta"`

	// ManualDelta is the change in manual-review count.
	ManualDelta int `json:"manual_delta"`

	// Direction is "improved", "declined", or "unchanged".
	Direction string `json:"direction"`
}

// RunSummary contains run metadata for comparison display.
type RunSummary struct {
	// Date is when the run was performed.
	Date time.Time `json:"date"`

	// Score is the overall accessibility score in [0, 100].
	Score int `json:"score"`

	// TotalIssues is the number of issues detected.
	TotalIssues int `json:"total_issues"`

	// FixesApplied is the number of automatic fixes applied.
	FixesApplied int `json:"fixes_applied"`

	// ManualReview is the number of issues left for a human.
	ManualReview int `json:"manual_review"`
}

// compareRuns compares two runs and generates a comparison result.
func compareRuns(previous, current database.RunRecord) *ComparisonResult {
	result := &ComparisonResult{
		Document: current.Document,
		PreviousRun: RunSummary{
			Date:         previous.Timestamp,
			Score:        previous.Score,
			TotalIssues:  previous.TotalIssues,
			FixesApplied: previous.FixesApplied,
			ManualReview: previous.ManualReview,
		},
		CurrentRun: RunSummary{
			Date:         current.Timestamp,
			Score:        current.Score,
			TotalIssues:  current.TotalIssues,
			FixesApplied: current.FixesApplied,
			ManualReview: current.ManualReview,
		},
	}

	result.ScoreDelta = current.Score - previous.Score
	result.IssuesDelta = current.TotalIssues - previous.TotalIssues
	result.ManualDelta = current.ManualReview - previous.ManualReview

	switch {
	case result.ScoreDelta > 0:
		result.Direction = scoreDirectionImproved
	case result.ScoreDelta < 0:
		result.Direction = scoreDirectionDeclined
	default:
		result.Direction = scoreDirectionUnchanged
	}

	return result
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult, w io.Writer) error {
	fmt.Fprintf(w, "Run Comparison: %s\n", result.Document)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\nAccessibility: %s\n", formatScoreDirection(result.Direction))

	fmt.Fprintf(w, "\nPrevious run: %s\n", result.PreviousRun.Date.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Current run:  %s\n", result.CurrentRun.Date.Format("2006-01-02 15:04:05"))

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  %-14s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(w, "  %-14s  %-10d  %-10d  %-10s\n", "Score",
		result.PreviousRun.Score, result.CurrentRun.Score,
		formatDelta(result.ScoreDelta))
	fmt.Fprintf(w, "  %-14s  %-10d  %-10d  %-10s\n", "Issues",
		result.PreviousRun.TotalIssues, result.CurrentRun.TotalIssues,
		formatDelta(result.IssuesDelta))
	fmt.Fprintf(w, "  %-14s  %-10d  %-10d  %-10s\n", "Auto-fixed",
		result.PreviousRun.FixesApplied, result.CurrentRun.FixesApplied,
		formatDelta(result.CurrentRun.FixesApplied-result.PreviousRun.FixesApplied))
	fmt.Fprintf(w, "  %-14s  %-10d  %-10d  %-10s\n", "Manual review",
		result.PreviousRun.ManualReview, result.CurrentRun.ManualReview,
		formatDelta(result.ManualDelta))

	return nil
}

// formatScoreDirection formats the score change direction for display.
func formatScoreDirection(direction string) string {
	switch direction {
	case scoreDirectionImproved:
		return "IMPROVED (score increased)"
	case scoreDirectionDeclined:
		return "DECLINED (score decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
