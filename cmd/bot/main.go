package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulfun/internal/bot"
	"github.com/jusunglee/hangulfun/internal/db/dbopen"
	"github.com/jusunglee/hangulfun/internal/envsetup"
	"github.com/jusunglee/hangulfun/internal/health"
	"github.com/jusunglee/hangulfun/internal/logger"
	"github.com/jusunglee/hangulfun/internal/translation"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	if envsetup.NeedsSetup() && len(os.Args) == 1 {
		saved, err := envsetup.Run()
		if err != nil {
			return fmt.Errorf("running setup: %w", err)
		}
		if !saved {
			return errors.New("setup cancelled")
		}
	}
	_ = godotenv.Load()

	fs := ff.NewFlagSet("hangul-bot")
	var (
		discordToken    = fs.StringLong("discord-token", "", "Discord bot token")
		databaseURL     = fs.StringLong("database-url", "./hangul.db", "PostgreSQL URL or SQLite file path")
		guildID         = fs.StringLong("guild-id", "", "Register commands to this guild only (instant, for development)")
		websiteURL      = fs.StringLong("website-url", "", "Mirror /decode lookups to this hangul-web instance")
		llmProvider     = fs.StringLong("llm-provider", "", "LLM provider for /translate (anthropic, google); empty disables it")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name (provider default if empty)")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
		healthPort      = fs.IntLong("health-port", 8080, "Health check port (0 disables it)")
		rateLimit       = fs.IntLong("rate-limit", bot.DefaultCommandsPerWindow, "Commands each user may send per rate window")
		rateWindow      = fs.DurationLong("rate-window", bot.DefaultRateWindow, "Rate limit window")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *discordToken == "" {
		return errors.New("discord-token is required")
	}

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	log := logger.New()

	repo, err := dbopen.Open(ctx, *databaseURL, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	var translator bot.Translator
	llmClient, err := translation.NewLLMClient(ctx, translation.LLMConfig{
		Provider:        *llmProvider,
		Model:           *llmModel,
		AnthropicAPIKey: *anthropicAPIKey,
		GoogleAPIKey:    *googleAPIKey,
	})
	switch {
	case errors.Is(err, translation.ErrNotConfigured):
		log.InfoContext(ctx, "no LLM provider configured, /translate disabled")
	case err != nil:
		return err
	default:
		translator = translation.NewTranslator(llmClient, repo, log)
	}

	session, err := discordgo.New("Bot " + *discordToken)
	if err != nil {
		return fmt.Errorf("creating Discord session: %w", err)
	}

	b := bot.New(
		bot.NewLogger(log),
		bot.NewDiscordSession(session),
		repo,
		translator,
		bot.NewWebsiteClient(*websiteURL),
		bot.Config{
			GuildID:           *guildID,
			CommandsPerWindow: *rateLimit,
			RateWindow:        *rateWindow,
		},
	)

	g, gctx := errgroup.WithContext(ctx)

	if *healthPort > 0 {
		healthServer := health.New(*healthPort, map[string]health.Check{
			"database": func(ctx context.Context) error {
				_, err := repo.CountLookups(ctx)
				return err
			},
			"discord": func(context.Context) error {
				if session.DataReady {
					return nil
				}
				return errors.New("not connected")
			},
		})
		g.Go(healthServer.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return healthServer.Shutdown(shutdownCtx)
		})
		log.InfoContext(ctx, "health server listening", "port", *healthPort)
	}

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			log.InfoContext(ctx, "received signal, shutting down", "signal", sig)
			cancel(errors.New("signal received"))
		case <-gctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		err := b.Run(gctx)
		cancel(errors.New("bot stopped"))
		return err
	})

	return g.Wait()
}
