package video

import (
	"fmt"

	"github.com/bazil852/aiinfluencerbackend/internal/config"
	"github.com/bazil852/aiinfluencerbackend/internal/provider"
	"github.com/bazil852/aiinfluencerbackend/internal/provider/heygen"
	"github.com/bazil852/aiinfluencerbackend/internal/provider/mock"
)

// ProviderType defines supported video generation provider types
type ProviderType string

const (
	// ProviderTypeHeyGen is the HeyGen template API (cloud, for prod)
	ProviderTypeHeyGen ProviderType = "heygen"
	// ProviderTypeMock is an in-memory provider (for dev/test)
	ProviderTypeMock ProviderType = "mock"
)

// NewVideoProvider creates a VideoProvider instance based on configuration.
//
// Environment variables:
//   - PROVIDER_TYPE: "heygen" or "mock" (default: "heygen")
//   - HEYGEN_API_URL: HeyGen API base URL
//   - HEYGEN_TIMEOUT: per-request timeout for the generate call
func NewVideoProvider(cfg *config.Config) (provider.VideoProvider, error) {
	switch ProviderType(cfg.ProviderType) {
	case ProviderTypeHeyGen, "":
		return heygen.NewClient(heygen.Config{
			BaseURL: cfg.HeyGenAPIURL,
			Timeout: cfg.HeyGenTimeout,
		}), nil

	case ProviderTypeMock:
		return mock.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			cfg.ProviderType, ProviderTypeHeyGen, ProviderTypeMock)
	}
}
