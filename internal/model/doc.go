// Package model defines the core data structures used throughout the
// accessibility remediator.
//
// This package contains the following main types:
//   - Document, Page, and the element variants (Image, Link, Heading,
//     TextBlock, Table): the normalized document model produced by external
//     format parsers
//   - Issue: a single detected accessibility violation with remediation
//     metadata
//   - RemediationAction: a record of one applied automatic fix
//   - Report: the final per-document analysis report
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (detect, remedy, score, report) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
