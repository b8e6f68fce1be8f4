package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulfun/internal/db/dbopen"
	"github.com/jusunglee/hangulfun/internal/logger"
	"github.com/jusunglee/hangulfun/internal/metrics"
	"github.com/jusunglee/hangulfun/internal/translation"
	"github.com/jusunglee/hangulfun/internal/web"
	"github.com/jusunglee/hangulfun/internal/web/handlers"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

//go:embed all:dist
var staticFiles embed.FS

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("hangul-web")

	var (
		port            = fs_.Int64Long("port", 3000, "HTTP server port")
		databaseURL     = fs_.StringLong("database-url", "./hangul.db", "PostgreSQL URL or SQLite file path")
		llmProvider     = fs_.StringLong("llm-provider", "", "LLM provider for /api/v1/translate (anthropic, google); empty disables it")
		llmModel        = fs_.StringLong("llm-model", "", "LLM model name (provider default if empty)")
		anthropicAPIKey = fs_.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs_.StringLong("google-api-key", "", "Google API key")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing fs_: %w", err)
	}

	log := logger.New()
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	repo, err := dbopen.Open(ctx, *databaseURL, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	var translator handlers.Translator
	llmClient, err := translation.NewLLMClient(ctx, translation.LLMConfig{
		Provider:        *llmProvider,
		Model:           *llmModel,
		AnthropicAPIKey: *anthropicAPIKey,
		GoogleAPIKey:    *googleAPIKey,
	})
	switch {
	case errors.Is(err, translation.ErrNotConfigured):
		log.InfoContext(ctx, "no LLM provider configured, translation disabled")
	case err != nil:
		return err
	default:
		translator = translation.NewTranslator(llmClient, repo, log)
	}

	router := web.NewRouter(repo, log, translator)
	apiHandler := router.Handler()

	distFS, err := fs.Sub(staticFiles, "dist")
	if err != nil {
		return fmt.Errorf("creating sub filesystem: %w", err)
	}
	fileServer := http.FileServer(http.FS(distFS))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/health" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, s-maxage=60, max-age=0")
		fileServer.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if stats, ok := dbopen.PoolStats(repo); ok {
		g.Go(func() error {
			metrics.ExportPoolStats(gctx, stats, 15*time.Second)
			return nil
		})
	}

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
			cancel(errors.New("signal received"))
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.InfoContext(ctx, "starting web server", "port", *port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		cancel(errors.New("server stopped"))
		return nil
	})

	return g.Wait()
}
