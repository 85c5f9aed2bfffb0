package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing with content owners.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writePages(md, report)
	w.writeFixes(md, report)
	w.writeManualActions(md, report)
	w.writeWarnings(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with document information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Accessibility Analysis Report")
	md.PlainText("")

	info := report.DocumentInfo
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Document", "`" + info.FileName + "`"},
			{"Analysis Date", info.AnalysisDate.Format("2006-01-02 15:04:05 MST")},
			{"Slides Analyzed", strconv.Itoa(info.TotalPages)},
			{"Overall Score", scoreText(report.ExecutiveSummary.OverallScore)},
		},
	})
	md.PlainText("")
}

// scoreText renders a score with its WCAG 2.1 AA compliance grade.
func scoreText(score int) string {
	switch {
	case score >= 90:
		return strconv.Itoa(score) + "/100 (Excellent)"
	case score >= 75:
		return strconv.Itoa(score) + "/100 (Good)"
	case score >= 50:
		return strconv.Itoa(score) + "/100 (Needs Improvement)"
	default:
		return strconv.Itoa(score) + "/100 (Poor)"
	}
}

// writeSummary writes the executive summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	summary := report.ExecutiveSummary

	md.H2("Executive Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows: [][]string{
			{"🔴 Critical", strconv.Itoa(summary.CriticalIssues)},
			{"🟠 High", strconv.Itoa(summary.HighIssues)},
			{"🟡 Medium", strconv.Itoa(summary.MediumIssues)},
			{"🔵 Low", strconv.Itoa(summary.LowIssues)},
			{"**Total**", "**" + strconv.Itoa(summary.TotalIssues) + "**"},
		},
	})
	md.PlainText("")

	if summary.TotalIssues > 0 {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, summary)
}

// writePieChart writes a mermaid pie chart for severity distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary model.ExecutiveSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Severity Distribution"),
		piechart.WithShowData(true),
	)

	if summary.CriticalIssues > 0 {
		chart.LabelAndIntValue("Critical", uint64(summary.CriticalIssues))
	}
	if summary.HighIssues > 0 {
		chart.LabelAndIntValue("High", uint64(summary.HighIssues))
	}
	if summary.MediumIssues > 0 {
		chart.LabelAndIntValue("Medium", uint64(summary.MediumIssues))
	}
	if summary.LowIssues > 0 {
		chart.LabelAndIntValue("Low", uint64(summary.LowIssues))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on remaining work.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary model.ExecutiveSummary) {
	switch {
	case summary.CriticalIssues > 0:
		md.Cautionf(
			"Critical accessibility barriers detected! %d critical issue(s) block access to content.",
			summary.CriticalIssues,
		)
	case summary.HighIssues > 0:
		md.Warningf(
			"High severity issues detected. %d issue(s) make content inaccessible to some users.",
			summary.HighIssues,
		)
	case summary.ManualReviewNeeded > 0:
		md.Importantf(
			"%d issue(s) need manual review before this document meets WCAG 2.1 AA.",
			summary.ManualReviewNeeded,
		)
	case summary.TotalIssues > 0:
		md.Note("All detected issues were fixed automatically.")
	default:
		md.Tip("No accessibility issues detected.")
	}
	md.PlainText("")
}

// writePages writes the per-slide breakdown, skipping clean slides.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.Report) {
	md.H2("Slide Breakdown")
	md.PlainText("")

	rows := make([][]string, 0, len(report.Pages))
	for _, page := range report.Pages {
		title := page.Title
		if title == "" {
			title = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(page.PageNumber),
			truncateString(title, 40),
			strconv.Itoa(page.AccessibilityScore),
			strconv.Itoa(len(page.Issues)),
			page.Remediation.Status,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Slide", "Title", "Score", "Issues", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, page := range report.Pages {
		if len(page.Issues) == 0 {
			continue
		}
		md.PlainText("### Slide " + strconv.Itoa(page.PageNumber))
		md.PlainText("")
		w.writeIssuesTable(md, page.Issues)
	}
}

// writeIssuesTable writes a table of issues with details.
func (w *MarkdownWriter) writeIssuesTable(md *markdown.Markdown, issues []*model.Issue) {
	rows := make([][]string, len(issues))
	for i, issue := range issues {
		rows[i] = []string{
			IssueTypeTitle(issue.Type),
			issue.SeverityText,
			issue.Element.String(),
			string(issue.Status),
			truncateString(issue.RequiredAction, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Issue", "Severity", "Location", "Status", "Required Action"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, issue := range issues {
		if issue.Description != "" {
			md.Details(IssueTypeTitle(issue.Type)+" ("+issue.Element.String()+")", issue.Description)
		}
	}
	md.PlainText("")
}

// writeFixes writes the applied automatic fixes section.
func (w *MarkdownWriter) writeFixes(md *markdown.Markdown, report *model.Report) {
	fixes := report.RemediationSummary.AutomaticFixes

	md.H2("Automatic Fixes Applied")
	md.PlainText("")

	if len(fixes) == 0 {
		md.PlainText("No automatic fixes were applied.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(fixes))
	for i, fix := range fixes {
		before := fix.Before
		if before == "" {
			before = "(none)"
		}
		rows[i] = []string{
			fix.Element.String(),
			fix.Type,
			truncateString(before, 40),
			truncateString(fix.After, 40),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Location", "Fix", "Before", "After"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeManualActions writes the grouped manual worklist.
func (w *MarkdownWriter) writeManualActions(md *markdown.Markdown, report *model.Report) {
	actions := report.RemediationSummary.ManualActionsNeeded

	md.H2("Manual Actions Needed")
	md.PlainText("")

	if len(actions) == 0 {
		md.PlainText("Nothing left to do.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(actions))
	for i, action := range actions {
		rows[i] = []string{
			action.IssueType,
			strconv.Itoa(action.Count),
			joinPages(action.PagesAffected),
			string(action.Priority),
			action.TotalEstimatedTime,
			action.WCAGCriterion,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Issue Type", "Count", "Slides", "Priority", "Est. Time", "WCAG Criterion"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, action := range actions {
		md.Details(action.IssueType, action.ActionNeeded)
	}
	md.PlainText("")
}

// joinPages renders a page-number list as "1, 3, 7".
func joinPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}

// writeWarnings writes non-fatal analysis warnings, if any.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, report *model.Report) {
	if len(report.Warnings) == 0 {
		return
	}
	md.H2("Warnings")
	md.PlainText("")
	md.BulletList(report.Warnings...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated against the [WCAG 2.1 AA](https://www.w3.org/TR/WCAG21/) success criteria.*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
