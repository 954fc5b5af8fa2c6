package configcache

import (
	"errors"
	"testing"
	"time"

	"github.com/marchelxyz/mariko-vld-sub000/internal/domain"
	"github.com/marchelxyz/mariko-vld-sub000/internal/infrastructure/cache"
)

type fakeSource struct {
	calls   int
	configs map[string]*domain.IntegrationConfig
	err     error
}

func (s *fakeSource) GetIntegrationConfig(restaurantID string) (*domain.IntegrationConfig, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.configs[restaurantID], nil
}

func TestCachedConfigProviderCachesValue(t *testing.T) {
	source := &fakeSource{configs: map[string]*domain.IntegrationConfig{
		"rest-1": {RestaurantID: "rest-1", Enabled: true, OrganizationID: "org-1"},
	}}
	provider := NewCachedConfigProvider(source, cache.NewMemoryCache(), time.Minute)

	for i := 0; i < 3; i++ {
		cfg, err := provider.GetIntegrationConfig("rest-1")
		if err != nil {
			t.Fatalf("GetIntegrationConfig: %v", err)
		}
		if cfg == nil || cfg.OrganizationID != "org-1" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	}

	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1", source.calls)
	}
}

func TestCachedConfigProviderCachesNegativeResult(t *testing.T) {
	source := &fakeSource{configs: map[string]*domain.IntegrationConfig{}}
	provider := NewCachedConfigProvider(source, cache.NewMemoryCache(), time.Minute)

	for i := 0; i < 3; i++ {
		cfg, err := provider.GetIntegrationConfig("rest-without-pos")
		if err != nil {
			t.Fatalf("GetIntegrationConfig: %v", err)
		}
		if cfg != nil {
			t.Fatalf("expected nil config, got %+v", cfg)
		}
	}

	// отсутствие интеграции кэшируется так же, как и конфиг
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1", source.calls)
	}
}

func TestCachedConfigProviderDoesNotCacheErrors(t *testing.T) {
	source := &fakeSource{err: errors.New("db unavailable")}
	provider := NewCachedConfigProvider(source, cache.NewMemoryCache(), time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := provider.GetIntegrationConfig("rest-1"); err == nil {
			t.Fatal("expected error")
		}
	}
	if source.calls != 2 {
		t.Errorf("source calls = %d, errors must reach the source every time", source.calls)
	}
}

func TestCachedConfigProviderTTLExpiry(t *testing.T) {
	source := &fakeSource{configs: map[string]*domain.IntegrationConfig{
		"rest-1": {RestaurantID: "rest-1", Enabled: true},
	}}
	provider := NewCachedConfigProvider(source, cache.NewMemoryCache(), 20*time.Millisecond)

	if _, err := provider.GetIntegrationConfig("rest-1"); err != nil {
		t.Fatalf("GetIntegrationConfig: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, err := provider.GetIntegrationConfig("rest-1"); err != nil {
		t.Fatalf("GetIntegrationConfig: %v", err)
	}

	if source.calls != 2 {
		t.Errorf("source calls = %d, want refetch after ttl", source.calls)
	}
}

func TestCachedConfigProviderInvalidate(t *testing.T) {
	source := &fakeSource{configs: map[string]*domain.IntegrationConfig{
		"rest-1": {RestaurantID: "rest-1"},
	}}
	provider := NewCachedConfigProvider(source, cache.NewMemoryCache(), time.Minute)

	provider.GetIntegrationConfig("rest-1")
	provider.Invalidate("rest-1")
	provider.GetIntegrationConfig("rest-1")

	if source.calls != 2 {
		t.Errorf("source calls = %d, want 2 after invalidate", source.calls)
	}
}
