package configcache

import (
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/cache"
)

const DefaultTTL = 5 * time.Minute

// CachedConfigProvider decorates an IntegrationConfigProvider with a TTL
// cache. A nil ("no integration") result is cached like a present config, so
// enabling the integration can take up to one TTL window to become visible.
type CachedConfigProvider struct {
	source domain.IntegrationConfigProvider
	cache  cache.Cache
	ttl    time.Duration
}

func NewCachedConfigProvider(source domain.IntegrationConfigProvider, c cache.Cache, ttl time.Duration) *CachedConfigProvider {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedConfigProvider{
		source: source,
		cache:  c,
		ttl:    ttl,
	}
}

func (p *CachedConfigProvider) GetIntegrationConfig(restaurantID string) (*domain.IntegrationConfig, error) {
	key := "integration_config:" + restaurantID

	if v, ok := p.cache.Get(key); ok {
		cfg, _ := v.(*domain.IntegrationConfig)
		return cfg, nil
	}

	cfg, err := p.source.GetIntegrationConfig(restaurantID)
	if err != nil {
		// ошибки не кэшируем
		return nil, err
	}

	p.cache.Set(key, cfg, p.ttl)
	return cfg, nil
}

func (p *CachedConfigProvider) Invalidate(restaurantID string) {
	p.cache.Invalidate("integration_config:" + restaurantID)
}
