package ocr

import (
	"fmt"

	"go.uber.org/zap"

	"creditscan/internal/config"
	"creditscan/internal/port"
)

// ProviderFactory is a function that creates a TextExtractor from a provider config.
type ProviderFactory func(cfg *config.OCRProviderConfig) (port.TextExtractor, error)

// registry of provider factories; "docai" is built in.
var providers = map[string]ProviderFactory{
	"docai": func(cfg *config.OCRProviderConfig) (port.TextExtractor, error) {
		return NewHTTPExtractor(cfg)
	},
}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates a TextExtractor from a provider config using the registered factory.
func NewProvider(cfg *config.OCRProviderConfig) (port.TextExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown ocr provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewExtractor builds the configured extractor chain: primary, optional
// secondary, then the sidecar reader when enabled. A provider without an
// endpoint is skipped so that sidecar-only deployments work.
func NewExtractor(cfg *config.OCRConfig, storage port.ObjectStorage, log *zap.Logger) (port.TextExtractor, error) {
	var extractors []port.TextExtractor
	var names []string

	for _, pc := range []*config.OCRProviderConfig{&cfg.Primary, cfg.SecondaryConfig()} {
		if pc == nil || pc.Provider == "" || pc.Endpoint == "" {
			continue
		}
		e, err := NewProvider(pc)
		if err != nil {
			return nil, err
		}
		extractors = append(extractors, e)
		names = append(names, pc.Provider)
	}
	if cfg.SidecarFallback && storage != nil {
		extractors = append(extractors, NewSidecarExtractor(storage))
		names = append(names, "sidecar")
	}

	switch len(extractors) {
	case 0:
		return nil, fmt.Errorf("no ocr extractor configured")
	case 1:
		return extractors[0], nil
	default:
		return NewFallbackExtractor(extractors, names, log), nil
	}
}
