package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/config"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/database"
)

// NewHistoryCmd creates the history command.
// This command lists analysis runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [document]",
		Short: "List stored analysis runs",
		Long: `History lists analysis runs recorded in the history database.

Without arguments, every stored run is listed. With a document name, only
runs for that document are shown. Use 'remediator analyze' to record runs.

Examples:
  # List all stored runs
  remediator history

  # List runs for one document
  remediator history lecture-03.pptx

  # List the documents with stored runs
  remediator history --list-documents`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-documents", "L", false,
		"List all documents with stored runs")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listDocuments, err := cmd.Flags().GetBool("list-documents")
	if err != nil {
		return err
	}

	// Use XDG data directory for database
	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listDocuments {
		return listAnalyzedDocuments(ctx, db, cmd.OutOrStdout())
	}

	var document string
	if len(args) > 0 {
		document = args[0]
	}
	return listRunHistory(ctx, db, document, cmd.OutOrStdout())
}

// listAnalyzedDocuments lists all documents that have runs in the database.
func listAnalyzedDocuments(ctx context.Context, db *database.HistoryDB, w io.Writer) error {
	documents, err := db.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(documents) == 0 {
		fmt.Fprintln(w, "No analyzed documents found in the database.")
		fmt.Fprintln(w, "\nUse 'remediator analyze <model.json>' to analyze a document.")
		return nil
	}

	fmt.Fprintf(w, "Analyzed documents (%d):\n\n", len(documents))
	for _, document := range documents {
		fmt.Fprintf(w, "  • %s\n", document)
	}
	fmt.Fprintln(w, "\nUse 'remediator history <document>' to see runs for a document.")

	return nil
}

// listRunHistory lists stored runs, optionally filtered by document.
func listRunHistory(ctx context.Context, db *database.HistoryDB, document string, w io.Writer) error {
	runs, err := db.ListRuns(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		if document != "" {
			fmt.Fprintf(w, "No analysis history found for %s\n", document)
		} else {
			fmt.Fprintln(w, "No analysis history found in the database.")
		}
		fmt.Fprintln(w, "\nUse 'remediator analyze' to analyze a document.")
		return nil
	}

	if document != "" {
		fmt.Fprintf(w, "Analysis history for %s (%d runs):\n\n", document, len(runs))
	} else {
		fmt.Fprintf(w, "Analysis history (%d runs):\n\n", len(runs))
	}

	fmt.Fprintf(w, "  %-6s  %-30s  %-20s  %-6s  %s\n", "ID", "Document", "Date", "Score", "Issues")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 84))

	for _, run := range runs {
		fmt.Fprintf(w, "  %-6d  %-30s  %-20s  %-6d  %s\n",
			run.ID,
			truncateName(run.Document, 30),
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Score,
			formatIssueSummary(run),
		)
	}

	fmt.Fprintln(w, "\nUse 'remediator compare <document>' to compare the latest two runs.")

	return nil
}

// formatIssueSummary formats a run's issue counts into a compact string.
func formatIssueSummary(run database.RunRecord) string {
	if run.TotalIssues == 0 {
		return "No issues"
	}
	return fmt.Sprintf("%d found, %d fixed, %d manual",
		run.TotalIssues, run.FixesApplied, run.ManualReview)
}

// truncateName shortens a document name for table display.
func truncateName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	return name[:maxLen-3] + "..."
}
