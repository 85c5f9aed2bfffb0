package detect

import (
	"context"
	"testing"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// TestContrastDetector tests flagging and severity grading by ratio.
func TestContrastDetector(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		block    *model.TextBlock
		expected int
		severity model.Severity
	}{
		{
			"black on white passes",
			&model.TextBlock{Index: 1, Foreground: "#000000", Background: "#FFFFFF", FontSize: 12},
			0, 0,
		},
		{
			"light gray on white fails high",
			&model.TextBlock{Index: 1, Foreground: "#CCCCCC", Background: "#FFFFFF", FontSize: 12},
			1, model.SeverityHigh,
		},
		{
			"borderline normal text is medium",
			&model.TextBlock{Index: 1, Foreground: "#777777", Background: "#FFFFFF", FontSize: 12},
			1, model.SeverityMedium,
		},
		{
			"borderline ratio passes for large text",
			&model.TextBlock{Index: 1, Foreground: "#777777", Background: "#FFFFFF", FontSize: 20},
			0, 0,
		},
		{
			"unresolved foreground skipped",
			&model.TextBlock{Index: 1, Background: "#FFFFFF", FontSize: 12},
			0, 0,
		},
		{
			"unparseable color skipped",
			&model.TextBlock{Index: 1, Foreground: "inherit", Background: "#FFFFFF", FontSize: 12},
			0, 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := NewContrastDetector()
			page := &model.Page{Number: 1, TextBlocks: []*model.TextBlock{tc.block}}

			issues, err := d.Detect(context.Background(), nil, page)
			if err != nil {
				t.Fatalf("Detect returned error: %v", err)
			}
			if len(issues) != tc.expected {
				t.Fatalf("got %d issues, expected %d", len(issues), tc.expected)
			}
			if tc.expected == 1 {
				if issues[0].Type != model.TypeLowContrast {
					t.Errorf("type = %q", issues[0].Type)
				}
				if issues[0].Severity != tc.severity {
					t.Errorf("severity = %v, expected %v", issues[0].Severity, tc.severity)
				}
			}
		})
	}
}
