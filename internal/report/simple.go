package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-issue detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with per-issue details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writePages(&sb, report)
	w.writeFixes(&sb, report)
	w.writeManualActions(&sb, report)
	w.writeWarnings(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with document information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                   ACCESSIBILITY ANALYSIS REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	info := report.DocumentInfo
	sb.WriteString(fmt.Sprintf("Document:      %s\n", info.FileName))
	sb.WriteString(fmt.Sprintf("Analysis Date: %s\n", info.AnalysisDate.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Slides:        %d\n", info.TotalPages))
	sb.WriteString(fmt.Sprintf("Overall Score: %s\n", scoreText(report.ExecutiveSummary.OverallScore)))
	sb.WriteString("\n")
}

// writeSummary writes the severity summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	summary := report.ExecutiveSummary

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("EXECUTIVE SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  CRITICAL: %d\n", summary.CriticalIssues))
	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", summary.HighIssues))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", summary.MediumIssues))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", summary.LowIssues))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL:         %d issues\n", summary.TotalIssues))
	sb.WriteString(fmt.Sprintf("  AUTO-FIXED:    %d\n", summary.FixesApplied))
	sb.WriteString(fmt.Sprintf("  MANUAL REVIEW: %d\n", summary.ManualReviewNeeded))
	sb.WriteString("\n")
}

// writePages writes the per-slide breakdown.
func (w *SimpleWriter) writePages(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SLIDE BREAKDOWN\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, page := range report.Pages {
		sb.WriteString(fmt.Sprintf("  Slide %d: score %d, %d issue(s) - %s\n",
			page.PageNumber, page.AccessibilityScore, len(page.Issues), page.Remediation.Status))

		if !w.verbose {
			continue
		}
		for _, issue := range page.Issues {
			sb.WriteString(fmt.Sprintf("    * [%s] %s (%s)\n",
				issue.SeverityText, IssueTypeTitle(issue.Type), issue.Element))
			if issue.Description != "" {
				sb.WriteString(fmt.Sprintf("      %s\n", issue.Description))
			}
		}
	}
	sb.WriteString("\n")
}

// writeFixes writes the applied automatic fixes section.
func (w *SimpleWriter) writeFixes(sb *strings.Builder, report *model.Report) {
	fixes := report.RemediationSummary.AutomaticFixes
	if len(fixes) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("AUTOMATIC FIXES APPLIED\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, fix := range fixes {
		before := fix.Before
		if before == "" {
			before = "(none)"
		}
		sb.WriteString(fmt.Sprintf("  [+] %s: %s\n", fix.Element, fix.Type))
		sb.WriteString(fmt.Sprintf("      %q -> %q\n", before, fix.After))
		if fix.Note != "" {
			sb.WriteString(fmt.Sprintf("      Note: %s\n", fix.Note))
		}
	}
	sb.WriteString("\n")
}

// writeManualActions writes the grouped manual worklist.
func (w *SimpleWriter) writeManualActions(sb *strings.Builder, report *model.Report) {
	actions := report.RemediationSummary.ManualActionsNeeded
	if len(actions) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("MANUAL ACTIONS NEEDED\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, action := range actions {
		sb.WriteString(fmt.Sprintf("  * %s (%d) - %s, est. %s\n",
			action.IssueType, action.Count, action.Priority, action.TotalEstimatedTime))
		sb.WriteString(fmt.Sprintf("    Slides: %s\n", joinPages(action.PagesAffected)))
		sb.WriteString(fmt.Sprintf("    WCAG:   %s\n", action.WCAGCriterion))
		sb.WriteString(fmt.Sprintf("    Action: %s\n", action.ActionNeeded))
	}
	sb.WriteString("\n")
}

// writeWarnings writes non-fatal analysis warnings, if any.
func (w *SimpleWriter) writeWarnings(sb *strings.Builder, report *model.Report) {
	if len(report.Warnings) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("WARNINGS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, warning := range report.Warnings {
		sb.WriteString(fmt.Sprintf("  ! %s\n", warning))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Checked against the WCAG 2.1 AA success criteria\n")
	sb.WriteString("https://www.w3.org/TR/WCAG21/\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
