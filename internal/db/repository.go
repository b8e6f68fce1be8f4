package db

import (
	"context"
	"database/sql"
	"time"
)

// Lookup is a piece of Hangul someone analyzed, with how often it was
// looked up.
type Lookup struct {
	ID         int64
	Text       string
	Romanized  string
	Pronounced string
	Count      int64
	FirstSeen  time.Time
	LastSeen   time.Time
}

type RecordLookupParams struct {
	Text       string
	Romanized  string
	Pronounced string
}

// CachedTranslation is an LLM translation of a lyric line or phrase.
type CachedTranslation struct {
	ID          int64
	Text        string
	Translation string
	Explanation sql.NullString
	Provider    string
	Model       string
	CreatedAt   time.Time
}

type CacheTranslationParams struct {
	Text        string
	Translation string
	Explanation sql.NullString
	Provider    string
	Model       string
}

// Repository defines the interface for database operations
type Repository interface {
	// Lookups
	RecordLookup(ctx context.Context, arg RecordLookupParams) (Lookup, error)
	GetLookup(ctx context.Context, text string) (Lookup, error)
	ListRecentLookups(ctx context.Context, limit int32) ([]Lookup, error)
	ListTopLookups(ctx context.Context, limit int32) ([]Lookup, error)
	CountLookups(ctx context.Context) (int64, error)

	// Translations
	CacheTranslation(ctx context.Context, arg CacheTranslationParams) (CachedTranslation, error)
	GetCachedTranslation(ctx context.Context, text string) (CachedTranslation, error)

	// Retention/Cleanup
	DeleteLookupsBefore(ctx context.Context, before time.Time) (int64, error)
	DeleteOldTranslations(ctx context.Context, before time.Time) (int64, error)

	// Transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	// Lifecycle
	Close() error
}
