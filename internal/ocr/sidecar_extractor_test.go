package ocr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"creditscan/internal/config"
	"creditscan/internal/ocr"
	"creditscan/internal/port"
	"creditscan/mocks"
)

func TestSidecarExtractor(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bucket", "reports/1/r.pdf.txt").Return([]byte("EQUIFAX REPORT"), nil)

	out, err := ocr.NewSidecarExtractor(storage).Extract(context.Background(),
		port.ExtractInput{Bucket: "bucket", Key: "reports/1/r.pdf"})

	require.NoError(t, err)
	assert.Equal(t, "EQUIFAX REPORT", out.Text)
	assert.Equal(t, "sidecar", out.Provider)
}

func TestSidecarExtractor_Missing(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bucket", "k.txt").Return(nil, errors.New("NoSuchKey"))

	_, err := ocr.NewSidecarExtractor(storage).Extract(context.Background(), port.ExtractInput{Bucket: "bucket", Key: "k"})
	assert.ErrorContains(t, err, "NoSuchKey")

	_, err = ocr.NewSidecarExtractor(storage).Extract(context.Background(), port.ExtractInput{})
	assert.Error(t, err)
}

func TestNewExtractor(t *testing.T) {
	storage := new(mocks.MockObjectStorage)

	t.Run("sidecar only", func(t *testing.T) {
		e, err := ocr.NewExtractor(&config.OCRConfig{Primary: config.OCRProviderConfig{Provider: "docai"}, SidecarFallback: true}, storage, nil)
		require.NoError(t, err)
		assert.IsType(t, &ocr.SidecarExtractor{}, e)
	})

	t.Run("provider and sidecar", func(t *testing.T) {
		e, err := ocr.NewExtractor(&config.OCRConfig{
			Primary:         config.OCRProviderConfig{Provider: "docai", Endpoint: "http://ocr.local/extract"},
			SidecarFallback: true,
		}, storage, nil)
		require.NoError(t, err)
		assert.IsType(t, &ocr.FallbackExtractor{}, e)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := ocr.NewExtractor(&config.OCRConfig{
			Primary: config.OCRProviderConfig{Provider: "nope", Endpoint: "http://x"},
		}, storage, nil)
		assert.ErrorContains(t, err, "unknown ocr provider")
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := ocr.NewExtractor(&config.OCRConfig{}, nil, nil)
		assert.Error(t, err)
	})
}
