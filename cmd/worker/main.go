package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulfun/internal/db/dbopen"
	"github.com/jusunglee/hangulfun/internal/logger"
	"github.com/jusunglee/hangulfun/internal/metrics"
	"github.com/jusunglee/hangulfun/internal/retention"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("hangul-worker")
	var (
		databaseURL    = fs.StringLong("database-url", "./hangul.db", "PostgreSQL URL or SQLite file path")
		interval       = fs.DurationLong("interval", 1*time.Hour, "Prune interval")
		lookupTTL      = fs.DurationLong("lookup-ttl", 90*24*time.Hour, "Delete lookups not seen for this long (0 keeps them)")
		translationTTL = fs.DurationLong("translation-ttl", 30*24*time.Hour, "Delete cached translations older than this (0 keeps them)")
		metricsAddr    = fs.StringLong("metrics-addr", ":9090", "Prometheus metrics listen address")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *interval <= 0 {
		return errors.New("interval must be positive")
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	log := logger.New()

	repo, err := dbopen.Open(ctx, *databaseURL, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		metricsServer := &http.Server{Addr: *metricsAddr, Handler: metricsMux, ReadHeaderTimeout: 5 * time.Second}
		log.InfoContext(ctx, "starting metrics server", "addr", *metricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "metrics server error", "error", err)
		}
	}()

	if stats, ok := dbopen.PoolStats(repo); ok {
		go metrics.ExportPoolStats(ctx, stats, 15*time.Second)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("received signal, shutting down", "signal", sig)
		cancel(errors.New("signal received"))
	}()

	pruner := retention.NewPruner(repo, log, retention.Config{
		LookupTTL:      *lookupTTL,
		TranslationTTL: *translationTTL,
	})

	pruner.Run(ctx, *interval)
	log.Info("worker stopped")
	return nil
}
