// Package retention prunes stale lookup history and cached translations.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/metrics"
)

type Config struct {
	// LookupTTL is how long a lookup survives after it was last seen.
	LookupTTL time.Duration
	// TranslationTTL is how long a cached translation is reused.
	TranslationTTL time.Duration
}

type Pruner struct {
	repo   db.Repository
	log    *slog.Logger
	config Config
	now    func() time.Time
}

func NewPruner(repo db.Repository, log *slog.Logger, config Config) *Pruner {
	return &Pruner{repo: repo, log: log, config: config, now: time.Now}
}

type Result struct {
	LookupsDeleted      int64
	TranslationsDeleted int64
	LookupsRemaining    int64
}

// RunOnce deletes expired rows in one transaction. A zero TTL keeps that
// table forever.
func (p *Pruner) RunOnce(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() {
		metrics.PruneCycleDuration.Observe(time.Since(start).Seconds())
	}()

	var res Result
	now := p.now()
	err := p.repo.WithTx(ctx, func(tx db.Repository) error {
		var err error
		if p.config.LookupTTL > 0 {
			res.LookupsDeleted, err = tx.DeleteLookupsBefore(ctx, now.Add(-p.config.LookupTTL))
			if err != nil {
				return fmt.Errorf("deleting lookups: %w", err)
			}
		}
		if p.config.TranslationTTL > 0 {
			res.TranslationsDeleted, err = tx.DeleteOldTranslations(ctx, now.Add(-p.config.TranslationTTL))
			if err != nil {
				return fmt.Errorf("deleting translations: %w", err)
			}
		}
		res.LookupsRemaining, err = tx.CountLookups(ctx)
		if err != nil {
			return fmt.Errorf("counting lookups: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	metrics.RowsPruned.WithLabelValues("lookups").Add(float64(res.LookupsDeleted))
	metrics.RowsPruned.WithLabelValues("translations").Add(float64(res.TranslationsDeleted))
	metrics.LookupsStored.Set(float64(res.LookupsRemaining))
	return res, nil
}

// Run prunes immediately and then every interval until ctx is done.
func (p *Pruner) Run(ctx context.Context, interval time.Duration) {
	p.log.InfoContext(ctx, "retention worker starting", "interval", interval,
		"lookup_ttl", p.config.LookupTTL, "translation_ttl", p.config.TranslationTTL)
	p.runAndLog(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runAndLog(ctx)
		case <-ctx.Done():
			p.log.Info("retention worker stopped")
			return
		}
	}
}

func (p *Pruner) runAndLog(ctx context.Context) {
	res, err := p.RunOnce(ctx)
	if err != nil {
		p.log.ErrorContext(ctx, "pruning", "error", err)
		return
	}
	p.log.InfoContext(ctx, "prune complete",
		"lookups_deleted", res.LookupsDeleted,
		"translations_deleted", res.TranslationsDeleted,
		"lookups_remaining", res.LookupsRemaining)
}
