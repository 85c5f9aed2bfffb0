package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chrischizinski/unl-accessibility-remediator/internal/assistant"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/config"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/database"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/detect"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/docio"
	remlog "github.com/chrischizinski/unl-accessibility-remediator/internal/log"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/pipeline"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/remedy"
	"github.com/chrischizinski/unl-accessibility-remediator/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [model.json...]",
		Short: "Analyze document models for accessibility issues",
		Long: `Analyze runs the full accessibility pipeline over one or more normalized
document model files: validation, detection, remediation, scoring, and
reporting.

Automatic fixes (alt text, link text) are applied in the model and the
remediated model can be written back for the format parser with
--fixed-model. Structural issues land in the manual-review worklist of
the report.

Examples:
  # Analyze a single deck
  remediator analyze lecture-03.pptx.json

  # Analyze several decks concurrently
  remediator analyze deck1.json deck2.json deck3.json --batch 4

  # Use a local Ollama assistant for alt-text suggestions
  remediator analyze --assistant localhost:11434 lecture-03.pptx.json

  # Detect only, without touching the model
  remediator analyze --auto-fix=false lecture-03.pptx.json

  # Output a Markdown report to a file
  remediator analyze --markdown -o report.md lecture-03.pptx.json

  # Write the remediated model for the format parser
  remediator analyze --fixed-model fixed/ lecture-03.pptx.json

Configuration file (.remediator) example:
  defaults:
    model: llama3.1:8b
  documents:
    design-deck.pptx.json:
      autoFix: false
      disabledDetectors:
        - color_contrast`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Remediation behavior flags
	cmd.Flags().Bool("auto-fix", true,
		"Apply automatic fixes (disable for detection-only runs)")

	// Assistant flags
	cmd.Flags().StringP("assistant", "a", "",
		"Enable the suggestion assistant at the given address (e.g., localhost:11434)")
	cmd.Flags().String("model", config.DefaultAssistantModel,
		"Generation model requested from the assistant")
	cmd.Flags().Duration("assistant-timeout", config.DefaultAssistantTimeout,
		"Per-request timeout for assistant suggestion calls")
	cmd.Flags().Int("retries", config.DefaultAssistantRetries,
		"Number of attempts per assistant suggestion")

	// Batch analysis flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent document analyses")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .remediator in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Remediated model output
	cmd.Flags().String("fixed-model", "",
		"Write the remediated document model to this file or directory")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with content truncation
	logger := remlog.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.AutoFix, err = cmd.Flags().GetBool("auto-fix")
	if err != nil {
		return nil, err
	}

	assistantHost, err := cmd.Flags().GetString("assistant")
	if err != nil {
		return nil, err
	}
	if assistantHost != "" {
		cfg.AssistantEnabled = true
		cfg.AssistantHost = assistantHost
	}

	cfg.AssistantModel, err = cmd.Flags().GetString("model")
	if err != nil {
		return nil, err
	}

	cfg.AssistantTimeout, err = cmd.Flags().GetDuration("assistant-timeout")
	if err != nil {
		return nil, err
	}

	cfg.AssistantRetries, err = cmd.Flags().GetInt("retries")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load per-document configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.DocConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.DocConfigs = &config.File{
			Documents: make(map[string]config.DocumentConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.FixedModelPath, err = cmd.Flags().GetString("fixed-model")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Get positional arguments (document model paths)
	cfg.Targets = args

	return cfg, nil
}

// runAnalyze executes the analysis over all targets.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"targets", cfg.Targets,
		"autoFix", cfg.AutoFix,
		"assistant", cfg.AssistantEnabled,
		"batchSize", cfg.BatchSize,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	// Use batch processor for parallel analysis if multiple targets
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		return runBatchAnalysis(ctx, cfg, db, logger)
	}

	// Single target or sequential analysis
	return runSequentialAnalysis(ctx, cfg, db, logger)
}

// runSequentialAnalysis analyzes targets one at a time, applying
// per-document configuration overrides.
func runSequentialAnalysis(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Get document-specific configuration
		var docCfg config.DocumentConfig
		if cfg.DocConfigs != nil {
			docCfg = cfg.DocConfigs.GetDocumentConfig(filepath.Base(target))
		}

		// Create pipeline with document-specific options
		p := createPipelineForTarget(cfg, docCfg, logger)

		doc, err := docio.LoadDocument(target)
		if err != nil {
			logger.Error("load failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Load error for %s: %v\n", target, err)
			continue
		}

		fmt.Printf("Analyzing %s...\n", doc.Name)
		startTime := time.Now()

		run := pipeline.NewRun(doc)
		if err := p.Execute(ctx, run); err != nil {
			logger.Error("analysis failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Analysis error for %s: %v\n", target, err)
			continue
		}

		elapsed := time.Since(startTime)
		fmt.Printf("Analysis completed in %s (score: %d/100)\n\n",
			elapsed.Round(time.Millisecond), doc.Score)

		// Generate and output report
		if err := outputReport(cfg, run.Report); err != nil {
			logger.Error("report failed", "target", target, "error", err)
		}

		// Save to database if enabled
		if err := saveRun(ctx, db, run.Report, logger); err != nil {
			logger.Error("failed to save run", "target", target, "error", err)
		}

		// Write the remediated model for the format parser
		if err := writeFixedModel(cfg, target, doc, logger); err != nil {
			logger.Error("failed to write fixed model", "target", target, "error", err)
		}
	}

	return nil
}

// runBatchAnalysis analyzes multiple targets concurrently using BatchProcessor.
func runBatchAnalysis(ctx context.Context, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger) error {
	fmt.Printf("Starting batch analysis of %d documents (concurrency: %d)...\n\n",
		len(cfg.Targets), cfg.BatchSize)

	startTime := time.Now()

	// Warn user about batch processing limitation
	if cfg.DocConfigs != nil && len(cfg.DocConfigs.Documents) > 0 {
		logger.Warn("batch processing uses default document config only; per-document configs (autoFix, model, detectors) are ignored",
			"documentCount", len(cfg.DocConfigs.Documents))
		fmt.Fprintf(os.Stderr, "Warning: Per-document configurations are ignored in batch mode. Use sequential mode (--batch 1) to apply per-document settings.\n\n")
	}

	// Create batch processor with pipeline factory
	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			// Batch mode uses the config-file defaults for every document;
			// per-document overrides would need per-target pipelines.
			var docCfg config.DocumentConfig
			if cfg.DocConfigs != nil {
				docCfg = cfg.DocConfigs.Defaults
			}
			return createPipelineForTarget(cfg, docCfg, logger)
		},
		docio.LoadDocument,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Targets)

	for i, result := range results {
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] Failed: %s: %v\n",
				i+1, len(results), result.Path, result.Err)
			continue
		}

		fmt.Printf("[%d/%d] Analysis completed: %s (score: %d/100)\n",
			i+1, len(results), result.Run.Document.Name, result.Run.Document.Score)

		// Generate and output report
		if err := outputReport(cfg, result.Run.Report); err != nil {
			logger.Error("report failed", "target", result.Path, "error", err)
		}

		// Save to database if enabled
		if err := saveRun(ctx, db, result.Run.Report, logger); err != nil {
			logger.Error("failed to save run", "target", result.Path, "error", err)
		}

		// Write the remediated model for the format parser
		if err := writeFixedModel(cfg, result.Path, result.Run.Document, logger); err != nil {
			logger.Error("failed to write fixed model", "target", result.Path, "error", err)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch analysis completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// createPipelineForTarget creates a pipeline with the given configuration.
func createPipelineForTarget(cfg *config.Config, docCfg config.DocumentConfig, logger *slog.Logger) *pipeline.Pipeline {
	// Detector thresholds (document-specific disables override global)
	detectOpts := detect.DefaultOptions()
	detectOpts.Disabled = append(detectOpts.Disabled, cfg.DisabledDetectors...)
	detectOpts.Disabled = append(detectOpts.Disabled, docCfg.DisabledDetectors...)

	// Auto-fix (document-specific overrides global)
	autoFix := cfg.AutoFix
	if docCfg.AutoFix != nil {
		autoFix = *docCfg.AutoFix
	}

	// Assistant model (document-specific overrides global)
	assistantModel := cfg.AssistantModel
	if docCfg.Model != "" {
		assistantModel = docCfg.Model
	}

	plannerOpts := []remedy.Option{
		remedy.WithAutoFix(autoFix),
		remedy.WithDetectOptions(detectOpts),
		remedy.WithLogger(logger),
	}
	if cfg.AssistantEnabled {
		plannerOpts = append(plannerOpts, remedy.WithAssistant(assistant.NewOllama(
			cfg.AssistantHost,
			assistant.WithModel(assistantModel),
			assistant.WithRequestTimeout(cfg.AssistantTimeout),
			assistant.WithMaxRetries(cfg.AssistantRetries),
			assistant.WithLogger(logger),
		)))
	}

	analyzer := detect.NewAnalyzer(func(o *detect.Options) {
		*o = detectOpts
	})

	return pipeline.DefaultPipeline(
		pipeline.WithPipelineAnalyzer(analyzer),
		pipeline.WithPipelinePlanner(remedy.NewPlanner(plannerOpts...)),
		pipeline.WithPipelineLogger(logger),
	)
}

// outputReport outputs the analysis report in the requested format.
func outputReport(cfg *config.Config, rpt *model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with all data)
	if cfg.JSONReport {
		writer := report.NewJSONWriter(output, report.WithPrettyPrint())
		_, err := writer.Write(rpt)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(rpt)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	_, err := writer.Write(rpt)
	return err
}

// saveRun records the run in the history database if enabled.
// If db is nil, this function is a no-op.
func saveRun(ctx context.Context, db *database.HistoryDB, rpt *model.Report, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	id, err := db.SaveRun(ctx, rpt)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("run saved to history database",
		"document", rpt.DocumentInfo.FileName,
		"id", id,
	)
	return nil
}

// writeFixedModel writes the remediated document model when --fixed-model
// is set. If the flag is empty, this function is a no-op.
func writeFixedModel(cfg *config.Config, target string, doc *model.Document, logger *slog.Logger) error {
	if cfg.FixedModelPath == "" {
		return nil
	}

	outPath := docio.FixedModelPath(cfg.FixedModelPath, filepath.Base(target))
	if err := docio.SaveDocument(outPath, doc); err != nil {
		return err
	}

	logger.Info("remediated model written",
		"document", doc.Name,
		"path", outPath,
	)
	fmt.Printf("Remediated model written: %s\n", outPath)
	return nil
}
