// Package history records light curve invocations in a SQL database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/huangsam/lightcurve/internal/contract"
	"github.com/huangsam/lightcurve/schema"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// RunsTable is the table holding one row per invocation.
const RunsTable = "lightcurve_runs"

// sqliteTimeLayout is fixed width so that text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = "run_id, command_name, filename, location, outcome, message, points, started_at, duration_ns, base_dir, display_mode, image_bytes"

// Store implements contract.HistoryStore on top of database/sql.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &Store{} // Compile-time check

// NewStore opens the history store for the backend and creates its table.
// NoneBackend returns a store whose operations do nothing.
func NewStore(ctx context.Context, backend schema.DatabaseBackend, connStr string) (*Store, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &Store{backend: schema.NoneBackend}, nil
	}

	db, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	query, err := createTableQuery(backend)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", RunsTable, err)
	}

	return &Store{db: db, backend: backend}, nil
}

// openDB opens a connection pool for the backend without verifying it.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetHistoryDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, nil

	case schema.MySQLBackend:
		dsn, err := mysqlDSN(connStr)
		if err != nil {
			return nil, err
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

// mysqlDSN makes DATETIME columns scan into time.Time.
func mysqlDSN(connStr string) (string, error) {
	cfg, err := gomysql.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// quoteTableName quotes a table name for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholders returns n bind parameters for the backend.
func placeholders(backend schema.DatabaseBackend, n int) string {
	marks := make([]string, n)
	for i := range marks {
		if backend == schema.PostgreSQLBackend {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeLayout)
	default:
		return t.UTC()
	}
}

// timeScanner reads a started_at value for any backend.
type timeScanner struct {
	backend schema.DatabaseBackend
	text    string
	value   time.Time
}

func (ts *timeScanner) target() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.text
	}
	return &ts.value
}

func (ts *timeScanner) parsed() (time.Time, error) {
	if ts.backend != schema.SQLiteBackend {
		return ts.value.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, ts.text)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse time %q: %w", ts.text, err)
	}
	return t, nil
}

func (s *Store) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// Backend returns the configured backend.
func (s *Store) Backend() schema.DatabaseBackend {
	return s.backend
}

// Record implements the HistoryStore interface.
func (s *Store) Record(ctx context.Context, rec schema.RunRecord) error {
	if s.disabled() {
		return nil
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(RunsTable, s.backend), runColumns, placeholders(s.backend, 12))
	_, err := s.db.ExecContext(ctx, query,
		rec.RunID, string(rec.Command), rec.Filename, rec.Location, string(rec.Outcome), rec.Message,
		rec.Points, formatTime(rec.StartedAt, s.backend), rec.Duration.Nanoseconds(), rec.BaseDir,
		string(rec.Display), rec.ImageBytes)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// List implements the HistoryStore interface.
func (s *Store) List(ctx context.Context, limit int) ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY started_at DESC, run_id DESC", runColumns, quoteTableName(RunsTable, s.backend))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var rec schema.RunRecord
		var command, outcome, display string
		var durationNs int64
		started := timeScanner{backend: s.backend}
		if err := rows.Scan(&rec.RunID, &command, &rec.Filename, &rec.Location, &outcome, &rec.Message,
			&rec.Points, started.target(), &durationNs, &rec.BaseDir, &display, &rec.ImageBytes); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if rec.StartedAt, err = started.parsed(); err != nil {
			return nil, err
		}
		rec.Command = schema.Command(command)
		rec.Outcome = schema.Outcome(outcome)
		rec.Display = schema.DisplayMode(display)
		rec.Duration = time.Duration(durationNs)
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetStatus implements the HistoryStore interface.
func (s *Store) GetStatus(ctx context.Context) (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	table := quoteTableName(RunsTable, s.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(SUM(CASE WHEN outcome <> 'ok' THEN 1 ELSE 0 END), 0) FROM %s", table)
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&status.TotalRuns, &status.FailedRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}
	status.TableSizes[RunsTable] = int64(status.TotalRuns)
	if status.TotalRuns == 0 {
		return status, nil
	}

	last := timeScanner{backend: s.backend}
	lastQuery := fmt.Sprintf("SELECT started_at FROM %s ORDER BY started_at DESC LIMIT 1", table)
	if err := s.db.QueryRowContext(ctx, lastQuery).Scan(last.target()); err != nil {
		return status, fmt.Errorf("failed to get last run time: %w", err)
	}
	oldest := timeScanner{backend: s.backend}
	oldestQuery := fmt.Sprintf("SELECT started_at FROM %s ORDER BY started_at ASC LIMIT 1", table)
	if err := s.db.QueryRowContext(ctx, oldestQuery).Scan(oldest.target()); err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}

	var err error
	if status.LastRunTime, err = last.parsed(); err != nil {
		return status, err
	}
	if status.OldestRunTime, err = oldest.parsed(); err != nil {
		return status, err
	}
	return status, nil
}

// Clear implements the HistoryStore interface.
func (s *Store) Clear(ctx context.Context) error {
	if s.disabled() {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", quoteTableName(RunsTable, s.backend))); err != nil {
		return fmt.Errorf("failed to clear %s: %w", RunsTable, err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
