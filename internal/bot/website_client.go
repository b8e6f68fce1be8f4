package bot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WebsiteClient mirrors /decode lookups to the companion website's history.
// If URL is empty, all calls are no-ops (opt-out by default).
type WebsiteClient struct {
	url  string
	http *http.Client
}

func NewWebsiteClient(url string) *WebsiteClient {
	return &WebsiteClient{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebsiteClient) Enabled() bool {
	return w != nil && w.url != ""
}

// RecordLookup asks the website to analyze text, which records it there.
func (w *WebsiteClient) RecordLookup(ctx context.Context, text string) error {
	if !w.Enabled() {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.url+"/api/v1/analyze?"+url.Values{"text": {text}}.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("submitting lookup for %s: %w", text, err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("submitting lookup for %s: website returned %s", text, resp.Status)
	}
	return nil
}
