package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// DocumentLoader loads a document from a path. The batch processor is
// format-agnostic: the caller supplies the loader.
type DocumentLoader func(path string) (*model.Document, error)

// BatchResult is the outcome of analyzing one document in a batch.
type BatchResult struct {
	// Path is the document path as given to the batch.
	Path string

	// Run is the completed run state; nil when loading failed.
	Run *Run

	// Err records a load or pipeline failure for this document.
	Err error
}

// BatchProcessor handles concurrent analysis of multiple documents.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on single-document execution
// 2. It allows different batch strategies (e.g., rate limiting, retries)
// 3. It provides cleaner separation of concerns
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each document.
	// We use a factory to ensure each analysis gets a fresh pipeline.
	pipelineFactory func() *Pipeline

	// loader reads a document from disk.
	loader DocumentLoader

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed runs, indexed by input position.
	// Access is synchronized via mutex.
	results []BatchResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each document to create a
// fresh pipeline instance. This ensures that pipeline state doesn't leak
// between analyses.
func NewBatchProcessor(pipelineFactory func() *Pipeline, loader DocumentLoader, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		loader:          loader,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple documents concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each document gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Per-document failures are recorded in the corresponding BatchResult and
// do not stop the other analyses. The error return indicates cancellation.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]BatchResult, error) {
	bp.logger.Info("starting batch processing",
		"total_documents", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results slice to maintain input order
	bp.results = make([]BatchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("analyzing document",
				"path", path,
				"index", i+1,
				"total", len(paths),
			)

			result := BatchResult{Path: path}

			doc, err := bp.loader(path)
			if err != nil {
				result.Err = err
				bp.store(i, result)
				bp.logger.Warn("document load failed",
					"path", path,
					"error", err,
				)
				// Don't return the error to errgroup - we want the other
				// documents analyzed. The error stays in the result.
				return nil
			}

			run := NewRun(doc)
			result.Run = run
			if err := bp.pipelineFactory().Execute(ctx, run); err != nil {
				result.Err = err
				bp.store(i, result)
				bp.logger.Warn("analysis failed",
					"path", path,
					"error", err,
				)
				return nil
			}

			bp.store(i, result)
			bp.logger.Info("analysis completed",
				"path", path,
				"score", doc.Score,
			)
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_documents", len(paths),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// store records a result slot under the mutex.
func (bp *BatchProcessor) store(i int, result BatchResult) {
	bp.mu.Lock()
	bp.results[i] = result
	bp.mu.Unlock()
}
