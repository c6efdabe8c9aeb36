package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"creditscan/internal/config"
	"creditscan/internal/port"
)

// HTTPExtractor implements port.TextExtractor against a document-AI endpoint
// that accepts the raw file as the request body and answers {"text", "pages"}.
type HTTPExtractor struct {
	name     string
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewHTTPExtractor creates an HTTP text extractor from a provider config.
func NewHTTPExtractor(cfg *config.OCRProviderConfig) (*HTTPExtractor, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("ocr provider %s: endpoint is required", cfg.Provider)
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &HTTPExtractor{
		name:     cfg.Provider,
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type extractResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

func (e *HTTPExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(input.FileBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", input.ContentType)
	req.Header.Set("Accept", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", e.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("%s error (status %d): %s", e.name, resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, NewRateLimitError(e.name, baseErr, retryAfter)
		}
		return nil, baseErr
	}

	var parsed extractResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return nil, ErrNoText
	}

	return &port.ExtractOutput{
		Text:     parsed.Text,
		Provider: e.name,
		Pages:    parsed.Pages,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
