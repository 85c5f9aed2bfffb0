// Package docio loads and saves the normalized document model as JSON.
//
// The engine never parses presentation formats itself. An external format
// parser converts the source file (PPTX, Slides export, etc.) into the
// normalized model, and applies the remediated model back to the source.
// This package is that boundary: LoadDocument reads what the parser
// produced, SaveDocument writes what the parser consumes.
package docio
