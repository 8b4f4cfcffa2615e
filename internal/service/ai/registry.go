package ai

import (
	"fmt"
	"sync"

	"pageforge/internal/config"
	aiSvc "pageforge/internal/domain/services/ai"
)

// ProviderRegistry creates text providers on first use and caches the
// instances. Providers hold API clients, so one instance per name is
// enough.
//
// Thread-safe for concurrent access.
type ProviderRegistry struct {
	cfg   *config.Config
	mu    sync.RWMutex
	cache map[string]aiSvc.TextProvider
}

// NewProviderRegistry creates a registry backed by the given config.
func NewProviderRegistry(cfg *config.Config) *ProviderRegistry {
	return &ProviderRegistry{
		cfg:   cfg,
		cache: make(map[string]aiSvc.TextProvider),
	}
}

// Resolve returns the provider for the given name, creating and caching
// it on first use.
//
// Supported providers:
//   - "anthropic" - Claude models via the Anthropic API
//   - "lorem"     - mock provider for development, no API key required
func (r *ProviderRegistry) Resolve(provider string) (aiSvc.TextProvider, error) {
	if provider == "" {
		return nil, fmt.Errorf("provider cannot be empty")
	}

	r.mu.RLock()
	if cached, ok := r.cache[provider]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock.
	if cached, ok := r.cache[provider]; ok {
		return cached, nil
	}

	created, err := r.create(provider)
	if err != nil {
		return nil, err
	}
	r.cache[provider] = created
	return created, nil
}

func (r *ProviderRegistry) create(provider string) (aiSvc.TextProvider, error) {
	switch provider {
	case "anthropic":
		if r.cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
		return NewAnthropicProvider(r.cfg.AnthropicAPIKey)
	case "lorem":
		return NewLoremProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
