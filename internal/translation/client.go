package translation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jusunglee/hangulfun/internal/anthropic"
	"github.com/jusunglee/hangulfun/internal/google"
	"github.com/jusunglee/hangulfun/internal/llm"
)

// ErrNotConfigured is returned by NewLLMClient when no provider is set.
var ErrNotConfigured = errors.New("no LLM provider configured")

// LLMConfig selects and authenticates an LLM provider, usually from the
// --llm-* flags.
type LLMConfig struct {
	Provider        string
	Model           string
	AnthropicAPIKey string
	GoogleAPIKey    string
}

// NewLLMClient builds the client for cfg.Provider.
func NewLLMClient(ctx context.Context, cfg LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "":
		return nil, ErrNotConfigured
	case llm.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.New("anthropic-api-key is required when using anthropic provider")
		}
		return anthropic.NewClient(cfg.AnthropicAPIKey, anthropic.Model(cfg.Model)), nil
	case llm.ProviderGoogle:
		if cfg.GoogleAPIKey == "" {
			return nil, errors.New("google-api-key is required when using google provider")
		}
		client, err := google.NewClient(ctx, cfg.GoogleAPIKey, google.Model(cfg.Model))
		if err != nil {
			return nil, fmt.Errorf("creating Google client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
