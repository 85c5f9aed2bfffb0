package pipeline

import (
	"context"
	"log/slog"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// Run is the mutable state of one document analysis, threaded through the
// pipeline steps in sequence.
type Run struct {
	// Document is the document under analysis. The remediation step is the
	// only step that modifies its content.
	Document *model.Document

	// Log collects the automatic fixes applied during the run.
	Log *model.RemediationLog

	// Warnings collects non-fatal problems (skipped malformed elements,
	// assistant fallbacks). Warnings never abort a run.
	Warnings []string

	// Report is the final analysis result, set by the report step.
	Report *model.Report

	// StepsPerformed records the names of the completed steps, in order.
	StepsPerformed []string
}

// NewRun creates a Run for the given document.
func NewRun(doc *model.Document) *Run {
	return &Run{
		Document: doc,
		Log:      &model.RemediationLog{},
	}
}

// Warn appends a warning to the run.
func (r *Run) Warn(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, each receiving the accumulated run state.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., priority, dependencies)
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the run state to modify. Returns an error if the
	// step fails critically; non-critical problems should be recorded as
	// run warnings and return nil.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, a default logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence over the run state.
// It respects context cancellation and logs each step's execution.
//
// The pipeline is all-or-nothing: the first step error aborts the run, and
// an aborted run carries no report. Recoverable problems are recorded as
// run warnings by the steps themselves and do not stop execution.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		// Check for cancellation before starting each step
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"document", run.Document.Name,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"document", run.Document.Name,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"document", run.Document.Name,
				"error", err,
			)
			return err
		}

		p.logger.Debug("step completed",
			"step", step.Name(),
			"document", run.Document.Name,
		)

		run.StepsPerformed = append(run.StepsPerformed, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
