package ocr

import (
	"context"
	"fmt"
	"strings"

	"creditscan/internal/port"
)

// SidecarSuffix is appended to a report's object key to locate its pre-extracted text.
const SidecarSuffix = ".txt"

// SidecarExtractor reads text that an upstream pipeline already extracted and
// stored next to the original file as "<key>.txt".
type SidecarExtractor struct {
	storage port.ObjectStorage
}

// NewSidecarExtractor creates a SidecarExtractor reading from storage.
func NewSidecarExtractor(storage port.ObjectStorage) *SidecarExtractor {
	return &SidecarExtractor{storage: storage}
}

func (e *SidecarExtractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	if input.Bucket == "" || input.Key == "" {
		return nil, fmt.Errorf("sidecar: object location is required")
	}
	data, err := e.storage.Download(ctx, input.Bucket, input.Key+SidecarSuffix)
	if err != nil {
		return nil, fmt.Errorf("sidecar: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrNoText
	}
	return &port.ExtractOutput{Text: string(data), Provider: "sidecar"}, nil
}
