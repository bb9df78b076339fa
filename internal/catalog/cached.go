package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tripplanner/internal/domain"
)

// CachedCatalog memoizes search results of another catalog for a fixed TTL.
// Lookups by id are passed straight through.
type CachedCatalog struct {
	next   Catalog
	cache  *cache.Cache
	logger *zap.Logger
}

// NewCachedCatalog wraps next with a go-cache store that expires entries after ttl.
func NewCachedCatalog(next Catalog, ttl time.Duration, logger *zap.Logger) *CachedCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCatalog{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Search returns cached results for an identical query, otherwise asks the
// wrapped catalog and stores a private copy of its answer.
func (c *CachedCatalog) Search(ctx context.Context, q Query) ([]domain.Attraction, error) {
	key := queryKey(q)
	if cached, found := c.cache.Get(key); found {
		c.logger.Debug("Catalog cache hit", zap.String("key", key))
		return append([]domain.Attraction(nil), cached.([]domain.Attraction)...), nil
	}

	results, err := c.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, append([]domain.Attraction(nil), results...), cache.DefaultExpiration)
	c.logger.Debug("Catalog cache set", zap.String("key", key), zap.Int("results", len(results)))

	return results, nil
}

// Get delegates to the wrapped catalog.
func (c *CachedCatalog) Get(ctx context.Context, id string) (domain.Attraction, error) {
	return c.next.Get(ctx, id)
}

// Flush drops every cached search.
func (c *CachedCatalog) Flush() {
	c.cache.Flush()
}

func queryKey(q Query) string {
	key := fmt.Sprintf("%s|%s|%g|%d", q.Category, q.Location, q.RadiusKm, q.Limit)
	if q.HasCoordinates() {
		key += fmt.Sprintf("|%.5f,%.5f", *q.Lat, *q.Lng)
	}
	return key
}

var (
	_ Catalog = (*MemoryCatalog)(nil)
	_ Catalog = (*CachedCatalog)(nil)
)
