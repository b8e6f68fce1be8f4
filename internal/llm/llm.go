package llm

import (
	"context"
	"strings"
)

// Provider names accepted by --llm-provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderGoogle    = "google"
)

type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Describer is implemented by clients that can name their provider and
// model, which is recorded alongside cached translations.
type Describer interface {
	Provider() string
	Model() string
}

// StripMarkdownCodeBlocks removes ```...``` wrappers from LLM responses
func StripMarkdownCodeBlocks(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	return text
}
