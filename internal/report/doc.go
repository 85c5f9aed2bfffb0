// Package report builds the final analysis report and writes it out.
//
// The builder is a pure aggregation over the scored document and the
// remediation log: it produces the executive summary, the per-page
// breakdown, and the grouped manual worklist. Writers then render the
// built report in different formats:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown for documentation and sharing
//
// Design decision: We separate report building from report writing so the
// aggregation logic is tested once and every output format renders the
// same data. Writers implement the Writer interface, allowing them to be
// composed for multi-format output.
package report
