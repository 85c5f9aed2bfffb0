package detect

import (
	"context"
	"testing"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// strPtr is a test helper for optional alt text.
func strPtr(s string) *string { return &s }

// TestAltTextDetector tests the missing/poor/decorative classification.
func TestAltTextDetector(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		image        *model.Image
		expectedType string // empty means no issue
	}{
		{"absent alt", &model.Image{Index: 1}, model.TypeMissingAltText},
		{"decorative empty alt", &model.Image{Index: 1, Alt: strPtr("")}, ""},
		{"whitespace only alt", &model.Image{Index: 1, Alt: strPtr("   ")}, ""},
		{"generic token", &model.Image{Index: 1, Alt: strPtr("image")}, model.TypePoorAltText},
		{"generic token mixed case", &model.Image{Index: 1, Alt: strPtr("Photo")}, model.TypePoorAltText},
		{"too short", &model.Image{Index: 1, Alt: strPtr("dog")}, model.TypePoorAltText},
		{"good alt", &model.Image{Index: 1, Alt: strPtr("Bar chart of fall enrollment by year")}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := NewAltTextDetector(DefaultOptions())
			page := &model.Page{Number: 1, Images: []*model.Image{tc.image}}

			issues, err := d.Detect(context.Background(), nil, page)
			if err != nil {
				t.Fatalf("Detect returned error: %v", err)
			}

			if tc.expectedType == "" {
				if len(issues) != 0 {
					t.Fatalf("expected no issues, got %d (%s)", len(issues), issues[0].Type)
				}
				return
			}
			if len(issues) != 1 {
				t.Fatalf("expected 1 issue, got %d", len(issues))
			}
			if issues[0].Type != tc.expectedType {
				t.Errorf("type = %q, expected %q", issues[0].Type, tc.expectedType)
			}
			if issues[0].Element.Kind != model.KindImage {
				t.Errorf("element kind = %q, expected image", issues[0].Element.Kind)
			}
		})
	}
}

// TestAltTextDetectorSeverities tests the severity split between missing
// and poor alt text.
func TestAltTextDetectorSeverities(t *testing.T) {
	t.Parallel()

	d := NewAltTextDetector(DefaultOptions())
	page := &model.Page{Number: 2, Images: []*model.Image{
		{Index: 1},
		{Index: 2, Alt: strPtr("picture")},
	}}

	issues, err := d.Detect(context.Background(), nil, page)
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}
	if issues[0].Severity != model.SeverityHigh {
		t.Errorf("missing alt severity = %v, expected high", issues[0].Severity)
	}
	if issues[1].Severity != model.SeverityMedium {
		t.Errorf("poor alt severity = %v, expected medium", issues[1].Severity)
	}
}
