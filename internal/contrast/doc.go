// Package contrast implements the WCAG 2.1 relative luminance and contrast
// ratio computation used by the color contrast detector.
//
// The evaluator is deterministic and side-effect-free: the same pair of
// colors always yields the same ratio and classification. Thresholds follow
// WCAG 2.1 Level AA: 4.5:1 for normal text and 3:1 for large text (18pt or
// larger, or bold 14pt or larger).
package contrast
