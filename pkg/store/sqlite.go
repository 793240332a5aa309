package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver

	"github.com/umputun/newsbot/pkg/domain"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteStore keeps source records in SQLite
type SQLiteStore struct {
	db *sqlx.DB
}

type recordSQL struct {
	SourceID  string    `db:"source_id"`
	LastTitle string    `db:"last_title"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewSQLite opens the database, applies pragmas and creates the schema
func NewSQLite(ctx context.Context, cfg Config) (*SQLiteStore, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:newsbot.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// single writer, also keeps ":memory:" databases on one connection
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// LastTitle returns the stored title for the source. Storage errors are logged and reported as absence.
func (s *SQLiteStore) LastTitle(ctx context.Context, id domain.SourceID) (string, bool) {
	var title string
	err := s.db.GetContext(ctx, &title, "SELECT last_title FROM source_records WHERE source_id = ?", string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		lgr.Printf("[WARN] failed to get last title for %s: %v", id, err)
		return "", false
	}
	return title, true
}

// CompareAndSet replaces the stored title if it differs from the given one and reports whether it did.
// The check and the write are a single conditional upsert, so concurrent callers can't both win.
func (s *SQLiteStore) CompareAndSet(ctx context.Context, id domain.SourceID, title string) (bool, error) {
	query := `
		INSERT INTO source_records (source_id, last_title, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			last_title = excluded.last_title,
			updated_at = excluded.updated_at
		WHERE source_records.last_title != excluded.last_title
	`

	var changed bool
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		res, err := s.db.ExecContext(ctx, query, string(id), title, time.Now().UTC())
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("compare and set %s: %w", id, err)}
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("rows affected for %s: %w", id, err)}
		}
		changed = affected > 0
		return nil
	}, &criticalError{})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// Records returns all stored source records ordered by source id
func (s *SQLiteStore) Records(ctx context.Context) ([]domain.SourceRecord, error) {
	var rows []recordSQL
	err := s.db.SelectContext(ctx, &rows, "SELECT source_id, last_title, updated_at FROM source_records ORDER BY source_id")
	if err != nil {
		return nil, fmt.Errorf("get source records: %w", err)
	}
	res := make([]domain.SourceRecord, 0, len(rows))
	for _, r := range rows {
		res = append(res, domain.SourceRecord{Source: domain.SourceID(r.SourceID), LastTitle: r.LastTitle, UpdatedAt: r.UpdatedAt})
	}
	return res, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	if e.err == nil {
		return "critical error"
	}
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

// Is makes any criticalError match the terminal error passed to repeater
func (e *criticalError) Is(target error) bool {
	_, ok := target.(*criticalError)
	return ok
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
