// Package log provides logging with automatic truncation of oversized
// content attributes, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Truncation of long content values (page text, prompts, suggestions)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Analysis logs routinely carry document content: the text block that
// tripped the all-caps detector, the prompt sent to the assistant, the
// suggestion that came back. A single dense slide can push kilobytes
// into one log line. The TruncateHandler caps string attribute values so
// debug output stays readable without every call site trimming by hand.
//
// # Usage
//
//	// Create a logger with content truncation
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("suggestion accepted",
//	    "text", longSuggestion, // Truncated to the configured limit
//	    "page", 3,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
