package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/akovalev/claimsift/internal/model"
	"github.com/akovalev/claimsift/internal/provider"
)

// SearchCache wraps a search provider with the layered cache. Cache failures
// are logged and bypassed; a broken cache must never break evidence retrieval.
type SearchCache struct {
	inner provider.SearchProvider
	store Store
	ttl   time.Duration
}

// NewSearchCache wraps inner with cached lookups
func NewSearchCache(inner provider.SearchProvider, store Store, ttl time.Duration) *SearchCache {
	return &SearchCache{inner: inner, store: store, ttl: ttl}
}

// Name returns the wrapped provider's name
func (s *SearchCache) Name() string { return s.inner.Name() }

// Search returns cached results when present, otherwise queries the inner
// provider and stores its results. Empty result sets are cached too; a query
// that found nothing yesterday will find nothing on retry today.
func (s *SearchCache) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	key := QueryKey(s.inner.Name(), query)

	if raw, found := s.store.Get(key); found {
		var results []model.SearchResult
		if err := json.Unmarshal(raw, &results); err == nil {
			return results, nil
		}
		_ = s.store.Delete(key)
	}

	results, err := s.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(results); err == nil {
		if err := s.store.Set(key, raw, s.ttl); err != nil {
			log.Printf("cache: store failed for %s: %v", s.inner.Name(), err)
		}
	}
	return results, nil
}
