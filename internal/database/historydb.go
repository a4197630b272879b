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

	"github.com/webexplore/webexplore/internal/model"
)

// dbFileName is the SQLite file created inside the data directory.
const dbFileName = "webexplore.db"

// HistoryDB stores one row per finished exploration, with the full
// result serialized alongside the summary columns.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when
	// absent. When false, a missing database is an error.
	CreateIfNotExists bool

	// EnableWAL enables write-ahead logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database inside dbDir.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rwc allows creation, mode=rw does not.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// SQLite supports one writer; keep the pool at a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the location of the database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the schema if it does not exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS explorations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root_url TEXT NOT NULL,
		depth INTEGER NOT NULL,
		pages_explored INTEGER NOT NULL,
		links_recorded INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		result_json TEXT NOT NULL,
		started_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_explorations_root ON explorations(root_url);
	CREATE INDEX IF NOT EXISTS idx_explorations_started ON explorations(started_at);
	`
	if _, err := hdb.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Record is one archived exploration row.
type Record struct {
	// ID is the row identifier.
	ID int64
	// RootURL is the explored root.
	RootURL string
	// Depth is the requested exploration depth.
	Depth int
	// PagesExplored counts the pages in the result.
	PagesExplored int
	// LinksRecorded counts the links across all pages.
	LinksRecorded int
	// Status is the terminal state of the run.
	Status model.Status
	// Error is the partial-failure message, empty when clean.
	Error string
	// Duration is how long the exploration took.
	Duration time.Duration
	// StartedAt is when the exploration began.
	StartedAt time.Time
}

// SaveExploration archives one result and returns its row ID.
func (hdb *HistoryDB) SaveExploration(ctx context.Context, result *model.ExplorationResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("marshal result: %w", err)
	}

	res, err := hdb.db.ExecContext(ctx, `
		INSERT INTO explorations
			(root_url, depth, pages_explored, links_recorded, status, error, duration_ms, result_json, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RootURL,
		result.ExplorationDepth,
		result.PagesExplored,
		result.TotalLinks(),
		result.Status.String(),
		result.Error,
		result.Duration.Milliseconds(),
		string(resultJSON),
		result.StartedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert exploration: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}
	return id, nil
}

// RecentExplorations returns up to limit archived runs, newest first.
func (hdb *HistoryDB) RecentExplorations(ctx context.Context, limit int) ([]Record, error) {
	rows, err := hdb.db.QueryContext(ctx, `
		SELECT id, root_url, depth, pages_explored, links_recorded, status, error, duration_ms, started_at
		FROM explorations
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query explorations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec        Record
			status     string
			durationMS int64
		)
		if err := rows.Scan(&rec.ID, &rec.RootURL, &rec.Depth, &rec.PagesExplored,
			&rec.LinksRecorded, &status, &rec.Error, &durationMS, &rec.StartedAt); err != nil {
			return nil, fmt.Errorf("scan exploration row: %w", err)
		}
		rec.Status = model.Status(status)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exploration rows: %w", err)
	}
	return records, nil
}

// LoadResult returns the full archived result for one row.
func (hdb *HistoryDB) LoadResult(ctx context.Context, id int64) (*model.ExplorationResult, error) {
	var resultJSON string
	err := hdb.db.QueryRowContext(ctx,
		`SELECT result_json FROM explorations WHERE id = ?`, id).Scan(&resultJSON)
	if err != nil {
		return nil, fmt.Errorf("load exploration %d: %w", id, err)
	}

	var result model.ExplorationResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("unmarshal exploration %d: %w", id, err)
	}
	return &result, nil
}
