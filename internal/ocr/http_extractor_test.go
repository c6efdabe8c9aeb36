package ocr_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creditscan/internal/config"
	"creditscan/internal/ocr"
	"creditscan/internal/port"
)

func newTestExtractor(t *testing.T, serverURL string) *ocr.HTTPExtractor {
	t.Helper()
	e, err := ocr.NewHTTPExtractor(&config.OCRProviderConfig{
		Provider:    "docai",
		Endpoint:    serverURL,
		APIKey:      "test-api-key",
		TimeoutSecs: 5,
	})
	require.NoError(t, err)
	return e
}

func TestHTTPExtractor_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "%PDF-1.7", string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"TRANSUNION CREDIT REPORT","pages":4}`))
	}))
	defer server.Close()

	out, err := newTestExtractor(t, server.URL).Extract(context.Background(),
		port.ExtractInput{FileBytes: []byte("%PDF-1.7"), ContentType: "application/pdf"})

	require.NoError(t, err)
	assert.Equal(t, "TRANSUNION CREDIT REPORT", out.Text)
	assert.Equal(t, 4, out.Pages)
	assert.Equal(t, "docai", out.Provider)
}

func TestHTTPExtractor_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "42")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer server.Close()

	_, err := newTestExtractor(t, server.URL).Extract(context.Background(), port.ExtractInput{ContentType: "application/pdf"})

	var rlErr *ocr.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "docai", rlErr.Provider)
	assert.Equal(t, 42*time.Second, rlErr.RetryAfter)
}

func TestHTTPExtractor_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal"))
	}))
	defer server.Close()

	_, err := newTestExtractor(t, server.URL).Extract(context.Background(), port.ExtractInput{ContentType: "application/pdf"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	var rlErr *ocr.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestHTTPExtractor_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"  \n ","pages":1}`))
	}))
	defer server.Close()

	_, err := newTestExtractor(t, server.URL).Extract(context.Background(), port.ExtractInput{ContentType: "application/pdf"})
	assert.ErrorIs(t, err, ocr.ErrNoText)
}

func TestNewHTTPExtractor_RequiresEndpoint(t *testing.T) {
	_, err := ocr.NewHTTPExtractor(&config.OCRProviderConfig{Provider: "docai"})
	assert.Error(t, err)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, ocr.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, ocr.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, ocr.ParseRetryAfterHeader("soon"))

	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	assert.InDelta(t, 90, ocr.ParseRetryAfterHeader(future), 2)
}

func TestNewRateLimitError_DefaultsTo60s(t *testing.T) {
	err := ocr.NewRateLimitError("docai", errors.New("429"), 0)
	assert.Equal(t, 60*time.Second, err.RetryAfter)
	assert.Contains(t, err.Error(), "docai rate limited")
}
