package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements db.Repository using SQLite
type Repository struct {
	conn *sql.DB
	db   querier
}

// New creates a new SQLite repository. The schema is applied on every open;
// it only creates what is missing.
func New(ctx context.Context, dbPath string) (*Repository, error) {
	// Strip sqlite:// prefix if present
	dbPath = strings.TrimPrefix(dbPath, "sqlite://")

	isNew := false
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		isNew = true
	}

	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening SQLite database: %w", err)
	}
	// A single connection keeps :memory: databases from splitting per
	// connection and serializes writers.
	sqliteDB.SetMaxOpenConns(1)

	if _, err := sqliteDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := sqliteDB.ExecContext(ctx, schemaSQL); err != nil {
		sqliteDB.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if isNew && dbPath != ":memory:" {
		slog.InfoContext(ctx, "created new SQLite database", "path", dbPath)
	}

	return &Repository{conn: sqliteDB, db: sqliteDB}, nil
}

func (r *Repository) Close() error {
	return r.conn.Close()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Repository{conn: r.conn, db: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Lookup methods

const lookupColumns = `id, text, romanized, pronounced, count, first_seen, last_seen`

func (r *Repository) RecordLookup(ctx context.Context, arg db.RecordLookupParams) (db.Lookup, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO lookups (text, romanized, pronounced)
		VALUES (?, ?, ?)
		ON CONFLICT (text) DO UPDATE SET
			romanized = excluded.romanized,
			pronounced = excluded.pronounced,
			count = lookups.count + 1,
			last_seen = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		RETURNING `+lookupColumns,
		arg.Text, arg.Romanized, arg.Pronounced)
	return scanLookup(row)
}

func (r *Repository) GetLookup(ctx context.Context, text string) (db.Lookup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		WHERE text = ?
	`, text)
	return scanLookup(row)
}

func (r *Repository) ListRecentLookups(ctx context.Context, limit int32) ([]db.Lookup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		ORDER BY last_seen DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLookups(rows)
}

func (r *Repository) ListTopLookups(ctx context.Context, limit int32) ([]db.Lookup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		ORDER BY count DESC, last_seen DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLookups(rows)
}

func (r *Repository) CountLookups(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lookups`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteLookupsBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM lookups WHERE last_seen < ?
	`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Translation methods

const translationColumns = `id, text, translation, explanation, provider, model, created_at`

func (r *Repository) CacheTranslation(ctx context.Context, arg db.CacheTranslationParams) (db.CachedTranslation, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO translations (text, translation, explanation, provider, model)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (text) DO UPDATE SET
			translation = excluded.translation,
			explanation = excluded.explanation,
			provider = excluded.provider,
			model = excluded.model,
			created_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		RETURNING `+translationColumns,
		arg.Text, arg.Translation, nullString(arg.Explanation), arg.Provider, arg.Model)
	return scanTranslation(row)
}

func (r *Repository) GetCachedTranslation(ctx context.Context, text string) (db.CachedTranslation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+translationColumns+`
		FROM translations
		WHERE text = ?
	`, text)
	return scanTranslation(row)
}

func (r *Repository) DeleteOldTranslations(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM translations WHERE created_at < ?
	`, formatTime(before))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Helper functions

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLookupFrom(s scanner) (db.Lookup, error) {
	var l db.Lookup
	var firstSeenStr, lastSeenStr string
	if err := s.Scan(&l.ID, &l.Text, &l.Romanized, &l.Pronounced, &l.Count, &firstSeenStr, &lastSeenStr); err != nil {
		return db.Lookup{}, err
	}
	l.FirstSeen, _ = time.Parse(time.RFC3339, firstSeenStr)
	l.LastSeen, _ = time.Parse(time.RFC3339, lastSeenStr)
	return l, nil
}

func scanLookup(row *sql.Row) (db.Lookup, error) {
	l, err := scanLookupFrom(row)
	if err != nil {
		return db.Lookup{}, db.NormalizeNoRows(err)
	}
	return l, nil
}

func scanLookups(rows *sql.Rows) ([]db.Lookup, error) {
	var lookups []db.Lookup
	for rows.Next() {
		l, err := scanLookupFrom(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}

func scanTranslation(row *sql.Row) (db.CachedTranslation, error) {
	var t db.CachedTranslation
	var createdAtStr string
	err := row.Scan(&t.ID, &t.Text, &t.Translation, &t.Explanation, &t.Provider, &t.Model, &createdAtStr)
	if err != nil {
		return db.CachedTranslation{}, db.NormalizeNoRows(err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func nullString(s sql.NullString) any {
	if s.Valid {
		return s.String
	}
	return nil
}
