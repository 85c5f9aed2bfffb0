// Package detect provides the WCAG 2.1 AA accessibility checks.
//
// # Purpose
//
// This package scans a normalized document model and yields Issues for
// every violation it recognizes. Detectors only read the model; fixes are
// applied elsewhere.
//
// # Design Philosophy
//
// The package follows a modular detector pattern where each check family is
// implemented as a separate Detector. This design was chosen because:
//  1. Each check has unique recognition logic and thresholds
//  2. Adding a check means registering a new detector, not modifying code
//  3. Detectors can be disabled selectively via configuration
//  4. Individual checks are easy to test in isolation
//
// # Check Families
//
//   - Alt text: images without (or with generic) alternative text
//   - Link text: vague link phrases that hide the destination
//   - Heading hierarchy: skipped heading levels
//   - Color contrast: text below the AA luminance contrast thresholds
//   - All caps: blocks of fully capitalized text
//   - Small font: body text below the readable size floor
//   - Table headers: data tables without a marked header row
//
// # Determinism
//
// Detectors run in a fixed order and traverse elements in document order,
// so repeated runs on identical input produce identical issue sequences.
// Pages are independent: the Analyzer may check them concurrently while
// keeping per-page ordering stable.
package detect
