package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chrischizinski/unl-accessibility-remediator/internal/model"
)

// HistoryDB provides SQLite-based storage for analysis run history.
// It manages connection pooling and provides methods for recording and
// querying past runs.
//
// Design decision: We use a single database file for all documents rather
// than one file per document. Cross-document queries ("which decks still
// score below 80") stay simple, and backup is a single file copy.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "remediator.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs store one record per completed analysis run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		score INTEGER NOT NULL,
		total_issues INTEGER NOT NULL,
		fixes_applied INTEGER NOT NULL,
		manual_review INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_document ON runs(document);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is the summary row for a stored analysis run. The full report
// is loaded separately via GetRunReport when needed.
type RunRecord struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Document is the analyzed document name.
	Document string

	// Timestamp is when the analysis was performed.
	Timestamp time.Time

	// Score is the overall accessibility score in [0, 100].
	Score int

	// TotalIssues is the number of issues detected before remediation.
	TotalIssues int

	// FixesApplied is the number of automatic fixes applied.
	FixesApplied int

	// ManualReview is the number of issues left for a human.
	ManualReview int
}

// SaveRun records a completed analysis run. The summary columns are
// derived from the report so history queries never need to parse the
// report JSON.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.Report) (int64, error) {
	if report == nil {
		return 0, fmt.Errorf("cannot save nil report")
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO runs (document, score, total_issues, fixes_applied, manual_review, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	summary := report.ExecutiveSummary
	result, err := hdb.db.ExecContext(ctx, query,
		report.DocumentInfo.FileName,
		summary.OverallScore,
		summary.TotalIssues,
		summary.FixesApplied,
		summary.ManualReviewNeeded,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns stored run summaries, newest first. When document is
// non-empty, only runs for that document are returned.
func (hdb *HistoryDB) ListRuns(ctx context.Context, document string) ([]RunRecord, error) {
	query := `
	SELECT id, document, timestamp, score, total_issues, fixes_applied, manual_review
	FROM runs
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if document != "" {
		query += " AND document = ?"
		args = append(args, document)
	}

	// id breaks ties within the one-second resolution of CURRENT_TIMESTAMP
	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		var rec RunRecord
		var timestamp string

		err := rows.Scan(
			&rec.ID,
			&rec.Document,
			&timestamp,
			&rec.Score,
			&rec.TotalIssues,
			&rec.FixesApplied,
			&rec.ManualReview,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.Timestamp = parseTimestamp(timestamp)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// LatestRuns returns the most recent n run summaries for a document,
// newest first. The compare command uses n=2.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, document string, n int) ([]RunRecord, error) {
	runs, err := hdb.ListRuns(ctx, document)
	if err != nil {
		return nil, err
	}
	if len(runs) > n {
		runs = runs[:n]
	}
	return runs, nil
}

// GetRunReport retrieves the full report for a run by its database ID.
// Returns nil without error when no such run exists.
func (hdb *HistoryDB) GetRunReport(ctx context.Context, id int64) (*model.Report, error) {
	query := `
	SELECT report_json FROM runs
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run report: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListDocuments returns the names of all documents with at least one
// stored run, sorted alphabetically.
func (hdb *HistoryDB) ListDocuments(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT document FROM runs
	ORDER BY document
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var documents []string
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, document)
	}

	return documents, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
