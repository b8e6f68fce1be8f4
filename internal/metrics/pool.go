package metrics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ExportPoolStats copies pgxpool counters into the DBPool gauges every
// interval until ctx is done.
func ExportPoolStats(ctx context.Context, stats func() *pgxpool.Stat, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s := stats()
			DBPoolTotalConns.Set(float64(s.TotalConns()))
			DBPoolIdleConns.Set(float64(s.IdleConns()))
			DBPoolAcquiredConns.Set(float64(s.AcquiredConns()))
			DBPoolMaxConns.Set(float64(s.MaxConns()))
		case <-ctx.Done():
			return
		}
	}
}
