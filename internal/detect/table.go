package detect

import (
	"context"
	"fmt"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// TableHeaderDetector flags data tables without a marked header row.
// Without header markup a screen reader announces bare cell values with no
// column names, making the table unintelligible.
//
// Single-row tables are skipped: with no body rows there is nothing for a
// header to label.
type TableHeaderDetector struct{}

// NewTableHeaderDetector creates a TableHeaderDetector.
func NewTableHeaderDetector() *TableHeaderDetector {
	return &TableHeaderDetector{}
}

// Name returns the detector name.
func (d *TableHeaderDetector) Name() string {
	return "table_headers"
}

// Detect scans the page's tables in order.
func (d *TableHeaderDetector) Detect(_ context.Context, _ *model.Document, page *model.Page) ([]*model.Issue, error) {
	var issues []*model.Issue

	for _, table := range page.Tables {
		if table.HasHeaderRow || table.Rows <= 1 {
			continue
		}

		ref := model.ElementRef{Page: page.Number, Kind: model.KindTable, Index: table.Index}
		issue := model.NewIssue(model.TypeMissingTableHeaders, ref)
		issue.Description = fmt.Sprintf("Table %d missing header row", table.Index)
		issue.CurrentState = fmt.Sprintf("%d rows x %d columns, no header row marked", table.Rows, table.Columns)
		issues = append(issues, issue)
	}
	return issues, nil
}
