package retention

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/db/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seed(t *testing.T, repo db.Repository) {
	t.Helper()
	ctx := context.Background()
	for _, text := range []string{"밥", "물"} {
		_, err := repo.RecordLookup(ctx, db.RecordLookupParams{Text: text, Romanized: text, Pronounced: text})
		require.NoError(t, err)
	}
	_, err := repo.CacheTranslation(ctx, db.CacheTranslationParams{Text: "물", Translation: "water", Provider: "p", Model: "m"})
	require.NoError(t, err)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnceKeepsFreshRows(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	p := NewPruner(repo, discard(), Config{LookupTTL: time.Hour, TranslationTTL: time.Hour})
	res, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{LookupsRemaining: 2}, res)
}

func TestRunOnceDeletesExpiredRows(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	p := NewPruner(repo, discard(), Config{LookupTTL: time.Hour, TranslationTTL: 24 * time.Hour})
	p.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	res, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{LookupsDeleted: 2, TranslationsDeleted: 1}, res)

	_, err = repo.GetCachedTranslation(context.Background(), "물")
	assert.True(t, db.IsNoRows(err))
}

func TestRunOnceZeroTTLKeepsTable(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	p := NewPruner(repo, discard(), Config{TranslationTTL: time.Minute})
	p.now = func() time.Time { return time.Now().Add(48 * time.Hour) }

	res, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, res.LookupsDeleted)
	assert.Equal(t, int64(1), res.TranslationsDeleted)
	assert.Equal(t, int64(2), res.LookupsRemaining)
}

func TestRunStopsOnCancel(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewPruner(repo, discard(), Config{LookupTTL: time.Hour}).Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
