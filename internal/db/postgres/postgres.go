package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jusunglee/hangulfun/internal/db"
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements db.Repository using PostgreSQL via pgx
type Repository struct {
	pool *pgxpool.Pool
	q    querier
}

// New creates a new PostgreSQL repository and applies the schema.
func New(ctx context.Context, databaseURL string) (*Repository, error) {
	pool, err := db.NewPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Repository{pool: pool, q: pool}, nil
}

func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// PoolStats exposes connection pool counters for the metrics exporter.
func (r *Repository) PoolStats() *pgxpool.Stat {
	return r.pool.Stat()
}

func (r *Repository) WithTx(ctx context.Context, fn func(repo db.Repository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// If fn() panics, the normal err-check rollback below won't run.
	// recover() catches the panic so we can roll back the tx (releasing the db connection), then re-panic.
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	err = fn(&Repository{pool: r.pool, q: tx})
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("transaction error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Lookup methods

const lookupColumns = `id, text, romanized, pronounced, count, first_seen, last_seen`

func (r *Repository) RecordLookup(ctx context.Context, arg db.RecordLookupParams) (db.Lookup, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO lookups (text, romanized, pronounced)
		VALUES ($1, $2, $3)
		ON CONFLICT (text) DO UPDATE SET
			romanized = EXCLUDED.romanized,
			pronounced = EXCLUDED.pronounced,
			count = lookups.count + 1,
			last_seen = now()
		RETURNING `+lookupColumns,
		arg.Text, arg.Romanized, arg.Pronounced)
	return scanLookup(row)
}

func (r *Repository) GetLookup(ctx context.Context, text string) (db.Lookup, error) {
	row := r.q.QueryRow(ctx, `SELECT `+lookupColumns+` FROM lookups WHERE text = $1`, text)
	return scanLookup(row)
}

func (r *Repository) ListRecentLookups(ctx context.Context, limit int32) ([]db.Lookup, error) {
	return r.listLookups(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		ORDER BY last_seen DESC, id DESC
		LIMIT $1
	`, limit)
}

func (r *Repository) ListTopLookups(ctx context.Context, limit int32) ([]db.Lookup, error) {
	return r.listLookups(ctx, `
		SELECT `+lookupColumns+`
		FROM lookups
		ORDER BY count DESC, last_seen DESC, id DESC
		LIMIT $1
	`, limit)
}

func (r *Repository) listLookups(ctx context.Context, query string, limit int32) ([]db.Lookup, error) {
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (r *Repository) CountLookups(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM lookups`).Scan(&count)
	return count, err
}

func (r *Repository) DeleteLookupsBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM lookups WHERE last_seen < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Translation methods

const translationColumns = `id, text, translation, explanation, provider, model, created_at`

func (r *Repository) CacheTranslation(ctx context.Context, arg db.CacheTranslationParams) (db.CachedTranslation, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO translations (text, translation, explanation, provider, model)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (text) DO UPDATE SET
			translation = EXCLUDED.translation,
			explanation = EXCLUDED.explanation,
			provider = EXCLUDED.provider,
			model = EXCLUDED.model,
			created_at = now()
		RETURNING `+translationColumns,
		arg.Text, arg.Translation, toPgText(arg.Explanation), arg.Provider, arg.Model)
	return scanTranslation(row)
}

func (r *Repository) GetCachedTranslation(ctx context.Context, text string) (db.CachedTranslation, error) {
	row := r.q.QueryRow(ctx, `SELECT `+translationColumns+` FROM translations WHERE text = $1`, text)
	return scanTranslation(row)
}

func (r *Repository) DeleteOldTranslations(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM translations WHERE created_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Helper functions

func scanLookupFrom(row pgx.Row) (db.Lookup, error) {
	var l db.Lookup
	var firstSeen, lastSeen pgtype.Timestamptz
	if err := row.Scan(&l.ID, &l.Text, &l.Romanized, &l.Pronounced, &l.Count, &firstSeen, &lastSeen); err != nil {
		return db.Lookup{}, err
	}
	l.FirstSeen = firstSeen.Time
	l.LastSeen = lastSeen.Time
	return l, nil
}

func scanLookup(row pgx.Row) (db.Lookup, error) {
	l, err := scanLookupFrom(row)
	if err != nil {
		return db.Lookup{}, db.NormalizeNoRows(err)
	}
	return l, nil
}

func scanTranslation(row pgx.Row) (db.CachedTranslation, error) {
	var t db.CachedTranslation
	var explanation pgtype.Text
	var createdAt pgtype.Timestamptz
	err := row.Scan(&t.ID, &t.Text, &t.Translation, &explanation, &t.Provider, &t.Model, &createdAt)
	if err != nil {
		return db.CachedTranslation{}, db.NormalizeNoRows(err)
	}
	t.Explanation = fromPgText(explanation)
	t.CreatedAt = createdAt.Time
	return t, nil
}

func toPgText(s sql.NullString) pgtype.Text {
	return pgtype.Text{String: s.String, Valid: s.Valid}
}

func fromPgText(t pgtype.Text) sql.NullString {
	return sql.NullString{String: t.String, Valid: t.Valid}
}
