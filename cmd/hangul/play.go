package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/lrc"
	"github.com/jusunglee/hangulfun/internal/lyrics"
	"github.com/jusunglee/hangulfun/internal/translation"
	"github.com/peterbourgon/ff/v4"
)

var errNoLyrics = errors.New("no lyrics found")

func (c *cli) playCommand() *ff.Command {
	fs := ff.NewFlagSet("play").SetParent(c.flags)
	var (
		lrcPath         = fs.StringLong("lrc", "", "LRC file (defaults to FILE with a .lrc extension)")
		noAlt           = fs.BoolLong("no-alt", "draw inline instead of on the alternate screen")
		llmProvider     = fs.StringLong("llm-provider", "", "LLM provider for line translation (anthropic, google)")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name (provider default if empty)")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
	)
	return &ff.Command{
		Name:      "play",
		Usage:     "hangul play [FLAGS] FILE",
		ShortHelp: "step through timed lyrics syllable by syllable",
		Flags:     fs,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return errors.New("play takes exactly one FILE")
			}
			path := *lrcPath
			if path == "" {
				path = defaultLRCPath(args[0])
			}
			lines, err := loadLyrics(path)
			if err != nil {
				return err
			}

			var translator lyrics.Translator
			client, err := translation.NewLLMClient(ctx, translation.LLMConfig{
				Provider:        *llmProvider,
				Model:           *llmModel,
				AnthropicAPIKey: *anthropicAPIKey,
				GoogleAPIKey:    *googleAPIKey,
			})
			switch {
			case errors.Is(err, translation.ErrNotConfigured):
			case err != nil:
				return err
			default:
				if *c.dbPath == "" {
					translator = translation.NewTranslator(client, nil, c.log)
					break
				}
				return c.withRepo(ctx, func(repo db.Repository) error {
					return runBrowser(ctx, title(args[0]), lines, translation.NewTranslator(client, repo, c.log), *noAlt)
				})
			}
			return runBrowser(ctx, title(args[0]), lines, translator, *noAlt)
		},
	}
}

func runBrowser(ctx context.Context, title string, lines []lrc.Line, translator lyrics.Translator, noAlt bool) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !noAlt {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(lyrics.New(ctx, title, lines, translator), opts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running lyrics browser: %w", err)
	}
	return nil
}

// defaultLRCPath swaps the extension of an audio file for .lrc.
func defaultLRCPath(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".lrc"
}

func title(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func loadLyrics(path string) ([]lrc.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lyrics: %w", err)
	}
	defer f.Close()

	lines, err := lrc.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%s: %w", path, errNoLyrics)
	}
	return lines, nil
}
