// Package main provides the entry point for the remediator CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the remediator.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remediator",
		Short: "WCAG 2.1 AA accessibility analysis for slide decks",
		Long: `Remediator analyzes normalized slide-deck document models for WCAG 2.1 AA
accessibility issues: missing or poor alt text, vague link text, broken
heading hierarchy, low color contrast, all-caps text, small fonts, and
tables without header rows.

Safe fixes (alt text, link text) are applied automatically; structural
issues are routed to a manual-review worklist. Every run is scored and
recorded so decks can be tracked over time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
