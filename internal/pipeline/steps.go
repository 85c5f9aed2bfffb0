package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/detect"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/remedy"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/report"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/score"
)

// ErrInvalidDocument means the parsed document violates a structural
// invariant the later steps depend on.
var ErrInvalidDocument = errors.New("invalid document structure")

// ValidateStep checks the structural invariants of the parsed document
// before any analysis runs. Hard violations (missing pages, broken page
// numbering) abort the run; recoverable oddities (an out-of-range heading
// level, a negative font size) are dropped from analysis with a warning.
//
// Design decision: Validation is a separate step rather than part of
// detection because:
// 1. Detectors can then assume a well-formed document
// 2. Warnings about skipped elements belong to the run, not to a detector
// 3. It keeps parser bugs distinguishable from accessibility findings
type ValidateStep struct {
	logger *slog.Logger
}

// ValidateStepOption configures a ValidateStep.
type ValidateStepOption func(*ValidateStep)

// WithValidateLogger sets a custom logger for the validation step.
func WithValidateLogger(logger *slog.Logger) ValidateStepOption {
	return func(s *ValidateStep) {
		s.logger = logger
	}
}

// NewValidateStep creates a new document validation step.
func NewValidateStep(opts ...ValidateStepOption) *ValidateStep {
	s := &ValidateStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do executes the validation step.
func (s *ValidateStep) Do(_ context.Context, run *Run) error {
	doc := run.Document
	if doc == nil {
		return fmt.Errorf("%w: no document", ErrInvalidDocument)
	}
	if doc.Name == "" {
		return fmt.Errorf("%w: document has no name", ErrInvalidDocument)
	}

	for i, page := range doc.Pages {
		if page == nil {
			return fmt.Errorf("%w: page %d is missing", ErrInvalidDocument, i+1)
		}
		if page.Number != i+1 {
			return fmt.Errorf("%w: page at position %d is numbered %d", ErrInvalidDocument, i+1, page.Number)
		}

		// Malformed elements are dropped, not fatal: one broken element must
		// not hide the findings on the rest of the deck.
		page.Headings = dropInvalid(page.Headings, func(h *model.Heading) string {
			if h.Level < 1 || h.Level > 6 {
				return fmt.Sprintf("slide %d: heading %d has invalid level %d, skipped", page.Number, h.Index, h.Level)
			}
			return ""
		}, run)
		page.TextBlocks = dropInvalid(page.TextBlocks, func(tb *model.TextBlock) string {
			if tb.FontSize < 0 {
				return fmt.Sprintf("slide %d: text block %d has negative font size, skipped", page.Number, tb.Index)
			}
			return ""
		}, run)
		page.Tables = dropInvalid(page.Tables, func(t *model.Table) string {
			if t.Rows < 0 || t.Columns < 0 {
				return fmt.Sprintf("slide %d: table %d has negative dimensions, skipped", page.Number, t.Index)
			}
			return ""
		}, run)
	}

	s.logger.Debug("document validated",
		"document", doc.Name,
		"pages", len(doc.Pages),
		"warnings", len(run.Warnings),
	)
	return nil
}

// dropInvalid filters a page element slice, recording a run warning for
// every element the check rejects.
func dropInvalid[T any](elements []*T, check func(*T) string, run *Run) []*T {
	kept := elements[:0]
	for _, el := range elements {
		if warning := check(el); warning != "" {
			run.Warn(warning)
			continue
		}
		kept = append(kept, el)
	}
	return kept
}

// DetectStep runs the accessibility detectors over the document.
type DetectStep struct {
	analyzer *detect.Analyzer
	logger   *slog.Logger
}

// DetectStepOption configures a DetectStep.
type DetectStepOption func(*DetectStep)

// WithDetectLogger sets a custom logger for the detection step.
func WithDetectLogger(logger *slog.Logger) DetectStepOption {
	return func(s *DetectStep) {
		s.logger = logger
	}
}

// NewDetectStep creates a detection step around the given analyzer.
func NewDetectStep(analyzer *detect.Analyzer, opts ...DetectStepOption) *DetectStep {
	s := &DetectStep{
		analyzer: analyzer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *DetectStep) Name() string {
	return "detect"
}

// Do executes the detection step.
func (s *DetectStep) Do(ctx context.Context, run *Run) error {
	issues, err := s.analyzer.Analyze(ctx, run.Document)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	s.logger.Info("detection completed",
		"document", run.Document.Name,
		"issues", len(issues),
	)
	return nil
}

// RemediateStep applies automatic fixes via the planner.
type RemediateStep struct {
	planner *remedy.Planner
	logger  *slog.Logger
}

// RemediateStepOption configures a RemediateStep.
type RemediateStepOption func(*RemediateStep)

// WithRemediateLogger sets a custom logger for the remediation step.
func WithRemediateLogger(logger *slog.Logger) RemediateStepOption {
	return func(s *RemediateStep) {
		s.logger = logger
	}
}

// NewRemediateStep creates a remediation step around the given planner.
func NewRemediateStep(planner *remedy.Planner, opts ...RemediateStepOption) *RemediateStep {
	s := &RemediateStep{
		planner: planner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *RemediateStep) Name() string {
	return "remediate"
}

// Do executes the remediation step.
func (s *RemediateStep) Do(ctx context.Context, run *Run) error {
	log, warnings, err := s.planner.Remediate(ctx, run.Document)
	run.Log = log
	run.Warnings = append(run.Warnings, warnings...)
	if err != nil {
		return fmt.Errorf("remediation failed: %w", err)
	}
	s.logger.Info("remediation completed",
		"document", run.Document.Name,
		"fixes", log.Len(),
	)
	return nil
}

// ScoreStep computes page and document accessibility scores.
type ScoreStep struct {
	logger *slog.Logger
}

// ScoreStepOption configures a ScoreStep.
type ScoreStepOption func(*ScoreStep)

// WithScoreLogger sets a custom logger for the scoring step.
func WithScoreLogger(logger *slog.Logger) ScoreStepOption {
	return func(s *ScoreStep) {
		s.logger = logger
	}
}

// NewScoreStep creates a scoring step.
func NewScoreStep(opts ...ScoreStepOption) *ScoreStep {
	s := &ScoreStep{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "score"
}

// Do executes the scoring step.
func (s *ScoreStep) Do(_ context.Context, run *Run) error {
	overall := score.DocumentScore(run.Document)
	s.logger.Info("scoring completed",
		"document", run.Document.Name,
		"score", overall,
	)
	return nil
}

// ReportStep builds the final report from the run state.
type ReportStep struct {
	// now supplies the analysis timestamp; injectable for tests.
	now    func() time.Time
	logger *slog.Logger
}

// ReportStepOption configures a ReportStep.
type ReportStepOption func(*ReportStep)

// WithReportClock sets the timestamp source for the report.
func WithReportClock(now func() time.Time) ReportStepOption {
	return func(s *ReportStep) {
		if now != nil {
			s.now = now
		}
	}
}

// WithReportLogger sets a custom logger for the report step.
func WithReportLogger(logger *slog.Logger) ReportStepOption {
	return func(s *ReportStep) {
		s.logger = logger
	}
}

// NewReportStep creates a report-building step.
func NewReportStep(opts ...ReportStepOption) *ReportStep {
	s := &ReportStep{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do executes the report step.
func (s *ReportStep) Do(_ context.Context, run *Run) error {
	built, err := report.Build(run.Document, run.Log, run.Warnings, s.now())
	if err != nil {
		return fmt.Errorf("report aggregation failed: %w", err)
	}
	run.Report = built
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// Analyzer runs the detectors; a default analyzer is built when nil.
	Analyzer *detect.Analyzer

	// Planner applies fixes; a default planner is built when nil.
	Planner *remedy.Planner

	// Clock supplies the report timestamp; time.Now when nil.
	Clock func() time.Time

	// Logger for all steps; slog.Default when nil.
	Logger *slog.Logger
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineAnalyzer sets the analyzer used by the detection step.
func WithPipelineAnalyzer(analyzer *detect.Analyzer) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Analyzer = analyzer
	}
}

// WithPipelinePlanner sets the planner used by the remediation step.
func WithPipelinePlanner(planner *remedy.Planner) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Planner = planner
	}
}

// WithPipelineClock sets the report timestamp source.
func WithPipelineClock(now func() time.Time) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Clock = now
	}
}

// WithPipelineLogger sets the logger for the pipeline and all steps.
func WithPipelineLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates a pipeline with all standard steps in their fixed
// order: validate, detect, remediate, score, report.
//
// Design decision: We provide a default pipeline because:
// 1. Most callers want the full analysis
// 2. Reduces boilerplate in the CLI
// 3. Ensures consistent step ordering
func DefaultPipeline(opts ...DefaultPipelineOption) *Pipeline {
	cfg := &DefaultPipelineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = detect.NewAnalyzer()
	}
	if cfg.Planner == nil {
		cfg.Planner = remedy.NewPlanner()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	p := New(WithLogger(cfg.Logger))
	p.AddSteps(
		NewValidateStep(WithValidateLogger(cfg.Logger)),
		NewDetectStep(cfg.Analyzer, WithDetectLogger(cfg.Logger)),
		NewRemediateStep(cfg.Planner, WithRemediateLogger(cfg.Logger)),
		NewScoreStep(WithScoreLogger(cfg.Logger)),
		NewReportStep(WithReportClock(cfg.Clock), WithReportLogger(cfg.Logger)),
	)
	return p
}
