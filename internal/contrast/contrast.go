package contrast

import (
	"fmt"
	"math"
	"strings"
)

// WCAG 2.1 Level AA thresholds.
const (
	// AANormalRatio is the minimum contrast ratio for normal text.
	AANormalRatio = 4.5

	// AALargeRatio is the minimum contrast ratio for large text.
	AALargeRatio = 3.0

	// LargeTextSize is the point size at which text counts as large.
	LargeTextSize = 18.0

	// LargeTextBoldSize is the point size at which bold text counts as large.
	LargeTextBoldSize = 14.0
)

// Level classifies a contrast ratio against the AA thresholds.
type Level int

const (
	// LevelPass means the ratio meets the applicable AA threshold.
	LevelPass Level = iota

	// LevelBorderline means normal text in [3.0, 4.5): readable for many
	// users but below the AA requirement.
	LevelBorderline

	// LevelFail means the ratio is below 3.0, unreadable for low-vision users.
	LevelFail
)

// String returns a human-readable classification.
func (l Level) String() string {
	switch l {
	case LevelPass:
		return "pass"
	case LevelBorderline:
		return "borderline"
	case LevelFail:
		return "fail"
	default:
		return "unknown"
	}
}

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}

	var c RGB
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// Luminance computes the WCAG relative luminance of a color:
// each sRGB channel is linearized, then the channels are combined with the
// standard perceptual weights.
func Luminance(c RGB) float64 {
	r := linearize(float64(c.R) / 255.0)
	g := linearize(float64(c.G) / 255.0)
	b := linearize(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// linearize converts one sRGB channel to linear light per the WCAG formula.
func linearize(ch float64) float64 {
	if ch <= 0.03928 {
		return ch / 12.92
	}
	return math.Pow((ch+0.055)/1.055, 2.4)
}

// Ratio computes the contrast ratio between two colors:
// (L_lighter + 0.05) / (L_darker + 0.05), in [1, 21].
func Ratio(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsLargeText reports whether text of the given size and weight counts as
// large under the WCAG definition.
func IsLargeText(fontSize float64, bold bool) bool {
	if fontSize >= LargeTextSize {
		return true
	}
	return bold && fontSize >= LargeTextBoldSize
}

// Result is the outcome of one contrast evaluation.
type Result struct {
	// Ratio is the computed contrast ratio.
	Ratio float64

	// Large reports whether the large-text threshold applied.
	Large bool

	// Level is the AA classification of the ratio.
	Level Level
}

// Evaluate computes the contrast ratio between foreground and background and
// classifies it. Large text passes at 3:1; normal text needs 4.5:1, with
// ratios in [3.0, 4.5) classified borderline and below 3.0 failing.
func Evaluate(foreground, background RGB, fontSize float64, bold bool) Result {
	res := Result{
		Ratio: Ratio(foreground, background),
		Large: IsLargeText(fontSize, bold),
	}

	threshold := AANormalRatio
	if res.Large {
		threshold = AALargeRatio
	}

	switch {
	case res.Ratio >= threshold:
		res.Level = LevelPass
	case res.Ratio >= AALargeRatio:
		res.Level = LevelBorderline
	default:
		res.Level = LevelFail
	}
	return res
}

// EvaluateHex parses both colors and evaluates them. It returns an error for
// unparseable colors so callers can skip unresolved values.
func EvaluateHex(foreground, background string, fontSize float64, bold bool) (Result, error) {
	fg, err := ParseHex(foreground)
	if err != nil {
		return Result{}, err
	}
	bg, err := ParseHex(background)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(fg, bg, fontSize, bold), nil
}
