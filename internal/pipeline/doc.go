// Package pipeline orchestrates the analysis stages for a document.
//
// A Run carries the mutable state of one analysis: the document, the
// remediation log, accumulated warnings, and finally the built report.
// Steps execute in a fixed order (validate, detect, remediate, score,
// report) and the pipeline is all-or-nothing: any step error aborts the
// run and no report is produced.
//
// The BatchProcessor runs the same pipeline over many documents
// concurrently with a bounded worker limit.
package pipeline
