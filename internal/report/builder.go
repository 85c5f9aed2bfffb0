package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// ErrBrokenReference means an issue points at an element the document does
// not contain. The builder refuses to aggregate such a document: a report
// with dangling locations would send reviewers to elements that do not
// exist.
var ErrBrokenReference = errors.New("report references a missing element")

var titleCaser = cases.Title(language.English)

// Build aggregates the scored, remediated document and its action log into
// the final report. It is a pure function of its inputs: the document is
// read but never modified, and calling Build twice yields equal reports.
func Build(doc *model.Document, log *model.RemediationLog, warnings []string, analysisDate time.Time) (*model.Report, error) {
	for _, issue := range doc.Issues {
		if _, ok := doc.Lookup(issue.Element); !ok {
			return nil, fmt.Errorf("%w: issue %s at %s", ErrBrokenReference, issue.Type, issue.Element)
		}
	}

	report := &model.Report{
		DocumentInfo: model.DocumentInfo{
			FileName:     doc.Name,
			AnalysisDate: analysisDate,
			TotalPages:   len(doc.Pages),
		},
		ExecutiveSummary: buildSummary(doc, log),
		Pages:            buildPages(doc, log),
		RemediationSummary: model.RemediationSummary{
			AutomaticFixes:      log.Actions(),
			ManualActionsNeeded: buildManualActions(doc),
		},
		Warnings: warnings,
	}
	return report, nil
}

// buildSummary computes the executive summary counts. Severity counts cover
// everything detected; the manual count covers what is left after
// remediation.
func buildSummary(doc *model.Document, log *model.RemediationLog) model.ExecutiveSummary {
	summary := model.ExecutiveSummary{
		OverallScore: doc.Score,
		TotalIssues:  len(doc.Issues),
		FixesApplied: log.Len(),
	}
	for _, issue := range doc.Issues {
		switch issue.Severity {
		case model.SeverityCritical:
			summary.CriticalIssues++
		case model.SeverityHigh:
			summary.HighIssues++
		case model.SeverityMedium:
			summary.MediumIssues++
		default:
			summary.LowIssues++
		}
		if issue.NeedsManualAction() {
			summary.ManualReviewNeeded++
		}
	}
	return summary
}

// buildPages produces the per-page breakdown in page order.
func buildPages(doc *model.Document, log *model.RemediationLog) []model.PageReport {
	pages := make([]model.PageReport, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		fixes := log.ForPage(page.Number)

		manual := 0
		for _, issue := range page.Issues {
			if issue.NeedsManualAction() {
				manual++
			}
		}

		pages = append(pages, model.PageReport{
			PageNumber:         page.Number,
			Title:              page.Title,
			Issues:             page.Issues,
			AccessibilityScore: page.Score,
			ElementsAnalyzed: model.ElementCounts{
				Images:   len(page.Images),
				Links:    len(page.Links),
				Headings: len(page.Headings),
				Tables:   len(page.Tables),
			},
			Remediation: model.PageRemediation{
				AutomaticFixesApplied:  len(fixes),
				ManualActionsRemaining: manual,
				FixesDetails:           fixes,
				Status:                 pageStatus(len(page.Issues), len(fixes), manual),
			},
		})
	}
	return pages
}

// pageStatus derives the coarse per-page remediation label.
func pageStatus(issues, fixes, manual int) string {
	switch {
	case issues == 0:
		return "No Issues Found"
	case manual == 0:
		return "Fully Remediated"
	case fixes > 0:
		return "Partially Remediated"
	default:
		return "Manual Review Required"
	}
}

// buildManualActions groups the remaining manual work by issue type,
// ordered by priority, then descending count, then title.
func buildManualActions(doc *model.Document) []model.ManualAction {
	type group struct {
		issues []*model.Issue
		pages  map[int]bool
	}
	groups := make(map[string]*group)

	for _, issue := range doc.Issues {
		if !issue.NeedsManualAction() {
			continue
		}
		g, ok := groups[issue.Type]
		if !ok {
			g = &group{pages: make(map[int]bool)}
			groups[issue.Type] = g
		}
		g.issues = append(g.issues, issue)
		g.pages[issue.Page] = true
	}

	actions := make([]model.ManualAction, 0, len(groups))
	for issueType, g := range groups {
		pages := make([]int, 0, len(g.pages))
		for p := range g.pages {
			pages = append(pages, p)
		}
		sort.Ints(pages)

		highest := g.issues[0].Severity
		for _, issue := range g.issues[1:] {
			if issue.Severity > highest {
				highest = issue.Severity
			}
		}

		first := g.issues[0]
		actions = append(actions, model.ManualAction{
			IssueType:          IssueTypeTitle(issueType),
			Count:              len(g.issues),
			PagesAffected:      pages,
			Priority:           model.PriorityFor(highest),
			TotalEstimatedTime: totalEstimatedTime(g.issues),
			WCAGCriterion:      first.WCAGCriterion,
			ActionNeeded:       first.RequiredAction,
		})
	}

	sort.Slice(actions, func(i, j int) bool {
		pi, pj := priorityRank(actions[i].Priority), priorityRank(actions[j].Priority)
		if pi != pj {
			return pi < pj
		}
		if actions[i].Count != actions[j].Count {
			return actions[i].Count > actions[j].Count
		}
		return actions[i].IssueType < actions[j].IssueType
	})
	return actions
}

// priorityRank orders priorities for sorting, most urgent first.
func priorityRank(p model.Priority) int {
	switch p {
	case model.PriorityMustFix:
		return 0
	case model.PriorityShouldFix:
		return 1
	default:
		return 2
	}
}

// IssueTypeTitle renders an issue type identifier as a worklist heading,
// e.g. "missing_alt_text" becomes "Missing Alt Text".
func IssueTypeTitle(issueType string) string {
	return titleCaser.String(strings.ReplaceAll(issueType, "_", " "))
}

// totalEstimatedTime sums per-issue "lo-hi minutes" estimates into a single
// range. Estimates that do not parse are skipped rather than guessed at.
func totalEstimatedTime(issues []*model.Issue) string {
	var lo, hi int
	for _, issue := range issues {
		var l, h int
		if _, err := fmt.Sscanf(issue.EstimatedTime, "%d-%d minutes", &l, &h); err == nil {
			lo += l
			hi += h
		}
	}
	if hi == 0 {
		return "unknown"
	}
	if lo == hi {
		return fmt.Sprintf("%d minutes", hi)
	}
	return fmt.Sprintf("%d-%d minutes", lo, hi)
}
