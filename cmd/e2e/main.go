package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulfun/internal/analysis"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/db/sqlite"
	"github.com/jusunglee/hangulfun/internal/logger"
	"github.com/jusunglee/hangulfun/internal/translation"
)

// Lines from a well-known children's song; short enough to keep the run cheap.
var lyricLines = []string{
	"곰 세 마리가 한 집에 있어",
	"아빠 곰 엄마 곰 애기 곰",
}

func main() {
	if err := run(); err != nil {
		slog.Error("E2E FAILED", "error", err)
		os.Exit(1)
	}
	slog.Info("E2E PASSED")
}

func run() error {
	_ = godotenv.Load()

	llmProvider := requireEnv("LLM_PROVIDER")

	log := logger.New()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Info("Phase 1: Setting up DB and LLM client...")
	dbPath := fmt.Sprintf("/tmp/hangulfun-e2e-%d.db", time.Now().UnixNano())
	defer os.Remove(dbPath)

	repo, err := sqlite.New(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("creating temp SQLite: %w", err)
	}
	defer repo.Close()

	llmClient, err := translation.NewLLMClient(ctx, translation.LLMConfig{
		Provider:        llmProvider,
		Model:           os.Getenv("LLM_MODEL"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GoogleAPIKey:    os.Getenv("GOOGLE_API_KEY"),
	})
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}
	translator := translation.NewTranslator(llmClient, repo, log)

	log.Info("Phase 2: Translating lyric lines...")
	first, err := translator.TranslateLines(ctx, lyricLines)
	if err != nil {
		return fmt.Errorf("translating: %w", err)
	}
	for _, tr := range first {
		if tr.Cached {
			return fmt.Errorf("%q was cached on the first pass", tr.Original)
		}
		log.Info("translated", "original", tr.Original, "translated", tr.Translated, "explanation", tr.Explanation)
	}

	log.Info("Phase 3: Verifying the translation cache...")
	second, err := translator.TranslateLines(ctx, lyricLines)
	if err != nil {
		return fmt.Errorf("translating from cache: %w", err)
	}
	for i, tr := range second {
		if !tr.Cached || tr.Translated != first[i].Translated {
			return fmt.Errorf("%q not served from cache: cached=%v translated=%q", tr.Original, tr.Cached, tr.Translated)
		}
	}

	log.Info("Phase 4: Recording lookups...")
	for _, line := range lyricLines {
		word := analysis.Analyze(line)
		if _, err := repo.RecordLookup(ctx, db.RecordLookupParams{
			Text:       line,
			Romanized:  word.Romanized,
			Pronounced: word.Pronounced,
		}); err != nil {
			return fmt.Errorf("recording %q: %w", line, err)
		}
	}
	lookups, err := repo.ListRecentLookups(ctx, 10)
	if err != nil {
		return fmt.Errorf("listing lookups: %w", err)
	}
	if len(lookups) != len(lyricLines) {
		return errors.New("lookup history does not match the recorded lines")
	}

	log.Info("all verifications passed",
		"provider", llmProvider,
		"lines", len(lyricLines),
		"lookups", len(lookups),
	)
	return nil
}

func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return val
}
