package verify

import (
	"fmt"

	"github.com/verieval/verieval/internal/config"
	"github.com/verieval/verieval/internal/provider"
	"github.com/verieval/verieval/internal/provider/mock"
	"github.com/verieval/verieval/internal/provider/remote"
)

// ProviderType defines supported embedding provider types
type ProviderType string

const (
	// ProviderTypeMock is the deterministic in-process provider (for dev/test)
	ProviderTypeMock ProviderType = "mock"
	// ProviderTypeRemote is the HTTP embedding service provider
	ProviderTypeRemote ProviderType = "remote"
)

// NewEmbedder creates an embedding provider based on configuration.
// An empty type defaults to the mock provider so datasets can be smoke
// tested without a model server.
func NewEmbedder(cfg *config.Config, providerType string) (provider.Embedder, error) {
	switch ProviderType(providerType) {
	case ProviderTypeRemote:
		return remote.New(remote.Config{
			BaseURL:    cfg.EmbedURL,
			Timeout:    cfg.EmbedTimeout,
			RetryCount: 3,
		}, cfg.EmbedDim), nil

	case ProviderTypeMock, "":
		return mock.NewWithDimensions(cfg.EmbedDim), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s (supported: %s, %s)",
			providerType, ProviderTypeMock, ProviderTypeRemote)
	}
}
