package docio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// Errors returned by the document model loader.
var (
	// ErrModelNotFound is returned when the document model file does not
	// exist at the given path.
	ErrModelNotFound = errors.New("document model file not found")

	// ErrMalformedModel is returned when the file exists but is not valid
	// JSON for the document model. Structural problems inside a
	// well-formed model (bad page numbers, out-of-range levels) are the
	// validation step's job, not the loader's.
	ErrMalformedModel = errors.New("malformed document model")
)

// LoadDocument reads a normalized document model from a JSON file.
// The document name defaults to the file's base name when the model
// does not carry one, so reports and the run-history database always
// have a stable identifier.
func LoadDocument(path string) (*model.Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided model path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("failed to read document model: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedModel, path, err)
	}

	if doc.Name == "" {
		doc.Name = filepath.Base(path)
	}

	return &doc, nil
}

// SaveDocument writes a document model to a JSON file, creating parent
// directories as needed. The output is indented so the format parser
// side stays diffable during development.
func SaveDocument(path string, doc *model.Document) error {
	if doc == nil {
		return errors.New("cannot save nil document")
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document model: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write document model: %w", err)
	}

	return nil
}

// FixedModelPath resolves where the remediated model for doc should be
// written. When target names an existing directory (or ends with a path
// separator), the document keeps its own name inside it; otherwise
// target is used as the file path directly.
func FixedModelPath(target, docName string) string {
	if target == "" {
		return ""
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, docName)
	}
	if target[len(target)-1] == os.PathSeparator {
		return filepath.Join(target, docName)
	}
	return target
}
