// Package main provides the entry point for the remediator CLI.
//
// The remediator analyzes slide-deck document models for WCAG 2.1 AA
// accessibility issues, applies automatic fixes where safe, and reports
// what remains for manual review.
//
// Usage:
//
//	remediator analyze <model.json>
//	remediator analyze deck1.json deck2.json --batch 4
//
// See --help for all available options.
package main

// main is the entry point for the remediator.
func main() {
	Execute()
}
