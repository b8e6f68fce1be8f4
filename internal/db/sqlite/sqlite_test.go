package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func record(t *testing.T, repo db.Repository, text, romanized string) db.Lookup {
	t.Helper()
	l, err := repo.RecordLookup(context.Background(), db.RecordLookupParams{
		Text:       text,
		Romanized:  romanized,
		Pronounced: text,
	})
	require.NoError(t, err)
	return l
}

func TestRecordLookup(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := record(t, repo, "밥", "bap")
	assert.Equal(t, "밥", first.Text)
	assert.Equal(t, "bap", first.Romanized)
	assert.Equal(t, int64(1), first.Count)
	assert.False(t, first.FirstSeen.IsZero())

	again := record(t, repo, "밥", "bap")
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, int64(2), again.Count)
	assert.Equal(t, first.FirstSeen, again.FirstSeen)

	got, err := repo.GetLookup(ctx, "밥")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Count)

	count, err := repo.CountLookups(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetLookupMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetLookup(context.Background(), "없음")
	assert.True(t, db.IsNoRows(err))
	assert.ErrorIs(t, err, db.ErrNoRows)
}

func TestListLookups(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record(t, repo, "학교", "hakkkyo")
	record(t, repo, "밥", "bap")
	record(t, repo, "밥", "bap")
	record(t, repo, "밥", "bap")
	record(t, repo, "좋아", "joa")

	recent, err := repo.ListRecentLookups(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "좋아", recent[0].Text)

	top, err := repo.ListTopLookups(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "밥", top[0].Text)
	assert.Equal(t, int64(3), top[0].Count)
}

func TestDeleteLookupsBefore(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	record(t, repo, "밥", "bap")
	record(t, repo, "물", "mul")

	n, err := repo.DeleteLookupsBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.DeleteLookupsBefore(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := repo.CountLookups(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTranslationCache(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetCachedTranslation(ctx, "보고 싶다")
	assert.True(t, db.IsNoRows(err))

	cached, err := repo.CacheTranslation(ctx, db.CacheTranslationParams{
		Text:        "보고 싶다",
		Translation: "I miss you",
		Explanation: sql.NullString{String: "literally 'I want to see'", Valid: true},
		Provider:    "anthropic",
		Model:       "claude-haiku",
	})
	require.NoError(t, err)
	assert.Equal(t, "I miss you", cached.Translation)
	assert.True(t, cached.Explanation.Valid)

	got, err := repo.GetCachedTranslation(ctx, "보고 싶다")
	require.NoError(t, err)
	assert.Equal(t, cached.ID, got.ID)
	assert.Equal(t, "anthropic", got.Provider)

	// A second write replaces the cached row.
	updated, err := repo.CacheTranslation(ctx, db.CacheTranslationParams{
		Text:        "보고 싶다",
		Translation: "I want to see you",
		Provider:    "google",
		Model:       "gemini-flash",
	})
	require.NoError(t, err)
	assert.Equal(t, cached.ID, updated.ID)
	assert.Equal(t, "I want to see you", updated.Translation)
	assert.False(t, updated.Explanation.Valid)

	n, err := repo.DeleteOldTranslations(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestWithTxRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx db.Repository) error {
		record(t, tx, "밥", "bap")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetLookup(ctx, "밥")
	assert.True(t, db.IsNoRows(err))

	err = repo.WithTx(ctx, func(tx db.Repository) error {
		record(t, tx, "밥", "bap")
		return nil
	})
	require.NoError(t, err)
	_, err = repo.GetLookup(ctx, "밥")
	assert.NoError(t, err)
}

func TestNewFileDatabaseReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hangul.db")
	ctx := context.Background()

	repo, err := New(ctx, "sqlite://"+path)
	require.NoError(t, err)
	record(t, repo, "밥", "bap")
	require.NoError(t, repo.Close())

	repo, err = New(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	got, err := repo.GetLookup(ctx, "밥")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Count)
}
