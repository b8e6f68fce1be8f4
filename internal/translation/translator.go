package translation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/llm"
	"github.com/jusunglee/hangulfun/internal/metrics"
	"github.com/jusunglee/hangulfun/internal/transliteration"
)

// Cache is the part of db.Repository the translator needs. A nil Cache
// disables caching.
type Cache interface {
	GetCachedTranslation(ctx context.Context, text string) (db.CachedTranslation, error)
	CacheTranslation(ctx context.Context, arg db.CacheTranslationParams) (db.CachedTranslation, error)
}

type Translator struct {
	llm      llm.Client
	cache    Cache
	log      *slog.Logger
	provider string
	model    string
}

type Translation struct {
	Original    string `json:"original"`
	Translated  string `json:"translated"`
	Explanation string `json:"explanation,omitempty"`
	Cached      bool   `json:"cached,omitempty"`
}

// ErrMissingTranslation is returned when the model's answer leaves out a
// requested line.
var ErrMissingTranslation = errors.New("translation missing from response")

func NewTranslator(client llm.Client, cache Cache, log *slog.Logger) *Translator {
	t := &Translator{llm: client, cache: cache, log: log, provider: "unknown", model: "unknown"}
	if d, ok := client.(llm.Describer); ok {
		t.provider, t.model = d.Provider(), d.Model()
	}
	return t
}

const systemPrompt = `You are helping a learner read Korean song lyrics and everyday phrases.

For each line, provide:
1. A natural English translation
2. A brief explanation of grammar, idioms or slang that a learner would miss, or "" if there is nothing notable

Each line is followed by its romanization in parentheses; do not translate the romanization.

Respond ONLY with a JSON array in the same order as the input, no other text. Example:
[
  {"original": "보고 싶다", "translated": "I miss you", "explanation": "literally 'I want to see (you)'; -고 싶다 expresses desire"},
  {"original": "안녕하세요", "translated": "Hello", "explanation": ""}
]`

// Translate translates a single line, consulting the cache first.
func (t *Translator) Translate(ctx context.Context, text string) (Translation, error) {
	out, err := t.TranslateLines(ctx, []string{text})
	if err != nil {
		return Translation{}, err
	}
	return out[0], nil
}

// TranslateLines translates lines in order. Cached lines are served from
// the cache and the rest go to the model in one request.
func (t *Translator) TranslateLines(ctx context.Context, lines []string) ([]Translation, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	out := make([]Translation, len(lines))
	var missing []int
	for i, line := range lines {
		line = strings.TrimSpace(line)
		out[i].Original = line
		if cached, ok := t.lookup(ctx, line); ok {
			out[i] = cached
			continue
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	var sb strings.Builder
	sb.WriteString("Translate these lines:\n")
	for _, i := range missing {
		fmt.Fprintf(&sb, "- %s (%s)\n", out[i].Original, transliteration.Transliterate(out[i].Original))
	}

	start := time.Now()
	text, err := t.llm.Complete(ctx, systemPrompt, sb.String())
	metrics.LLMTranslationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("translating %d lines: %w", len(missing), err)
	}

	text = llm.StripMarkdownCodeBlocks(text)
	var translations []Translation
	if err := json.Unmarshal([]byte(text), &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation response: %w (response: %s)", err, text)
	}

	byOriginal := make(map[string]Translation, len(translations))
	for _, tr := range translations {
		byOriginal[strings.TrimSpace(tr.Original)] = tr
	}
	for n, i := range missing {
		tr, ok := byOriginal[out[i].Original]
		if !ok && len(translations) == len(missing) {
			// Models sometimes normalize the echoed original; fall back to position.
			tr, ok = translations[n], true
		}
		if !ok || tr.Translated == "" {
			return nil, fmt.Errorf("%q: %w", out[i].Original, ErrMissingTranslation)
		}
		tr.Original = out[i].Original
		out[i] = tr
		t.store(ctx, tr)
	}
	return out, nil
}

func (t *Translator) lookup(ctx context.Context, text string) (Translation, bool) {
	if t.cache == nil {
		return Translation{}, false
	}
	cached, err := t.cache.GetCachedTranslation(ctx, text)
	if err != nil {
		if !db.IsNoRows(err) {
			t.log.WarnContext(ctx, "reading translation cache", "error", err)
		}
		metrics.TranslationCacheLookups.WithLabelValues("miss").Inc()
		return Translation{}, false
	}
	metrics.TranslationCacheLookups.WithLabelValues("hit").Inc()
	return Translation{
		Original:    cached.Text,
		Translated:  cached.Translation,
		Explanation: cached.Explanation.String,
		Cached:      true,
	}, true
}

func (t *Translator) store(ctx context.Context, tr Translation) {
	if t.cache == nil {
		return
	}
	_, err := t.cache.CacheTranslation(ctx, db.CacheTranslationParams{
		Text:        tr.Original,
		Translation: tr.Translated,
		Explanation: sql.NullString{String: tr.Explanation, Valid: tr.Explanation != ""},
		Provider:    t.provider,
		Model:       t.model,
	})
	if err != nil {
		t.log.WarnContext(ctx, "writing translation cache", "error", err, "text", tr.Original)
	}
}
