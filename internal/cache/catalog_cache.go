package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"localmarket/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	searchKeyPrefix  = "catalog:search:v"
	namesKeyPrefix   = "catalog:names:"
	searchVersionKey = "catalog:search:version"

	// DefaultTTL bounds staleness for cached reads; writes also bump the
	// search version, so the TTL is a backstop, not the primary invalidation.
	DefaultTTL = 5 * time.Minute
)

// Catalog is a read-through Redis cache for search results and taxonomy
// lists. Keys for search results embed a version counter; product writes bump
// the counter, orphaning every cached result set at once instead of tracking
// individual keys.
type Catalog struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalog creates a catalog cache. A nil client yields a cache that always
// misses, which keeps the service layer free of nil checks.
func NewCatalog(rdb *redis.Client, logger *zap.Logger) *Catalog {
	return &Catalog{rdb: rdb, ttl: DefaultTTL, logger: logger}
}

// SearchKey builds the cache key for a filter under the current version.
func (c *Catalog) SearchKey(ctx context.Context, filter domain.SearchFilter) (string, bool) {
	if c.rdb == nil {
		return "", false
	}

	version, err := c.rdb.Get(ctx, searchVersionKey).Int64()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read search cache version", zap.Error(err))
			return "", false
		}
		version = 0
	}

	return fmt.Sprintf("%s%d:%s", searchKeyPrefix, version, fingerprint(filter)), true
}

// GetSearch retrieves a cached result set for the key, if present.
func (c *Catalog) GetSearch(ctx context.Context, key string) ([]*domain.Product, bool) {
	if c.rdb == nil || key == "" {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read cached search results", zap.Error(err))
		}
		return nil, false
	}

	var products []*domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Warn("Failed to unmarshal cached search results", zap.Error(err))
		return nil, false
	}

	return products, true
}

// SetSearch caches a result set under the key. Failures are logged only; the
// cache never fails a request.
func (c *Catalog) SetSearch(ctx context.Context, key string, products []*domain.Product) {
	if c.rdb == nil || key == "" {
		return
	}

	data, err := json.Marshal(products)
	if err != nil {
		c.logger.Warn("Failed to marshal search results for cache", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache search results", zap.Error(err))
	}
}

// InvalidateSearches orphans all cached search result sets by bumping the
// version embedded in their keys.
func (c *Catalog) InvalidateSearches(ctx context.Context) {
	if c.rdb == nil {
		return
	}

	if err := c.rdb.Incr(ctx, searchVersionKey).Err(); err != nil {
		c.logger.Warn("Failed to bump search cache version", zap.Error(err))
	}
}

// GetNames retrieves a cached taxonomy list ("categories" or "locations").
func (c *Catalog) GetNames(ctx context.Context, kind string) ([]string, bool) {
	if c.rdb == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, namesKeyPrefix+kind).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read cached taxonomy list", zap.String("kind", kind), zap.Error(err))
		}
		return nil, false
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		c.logger.Warn("Failed to unmarshal cached taxonomy list", zap.String("kind", kind), zap.Error(err))
		return nil, false
	}

	return names, true
}

// SetNames caches a taxonomy list.
func (c *Catalog) SetNames(ctx context.Context, kind string, names []string) {
	if c.rdb == nil {
		return
	}

	data, err := json.Marshal(names)
	if err != nil {
		c.logger.Warn("Failed to marshal taxonomy list for cache", zap.Error(err))
		return
	}

	if err := c.rdb.Set(ctx, namesKeyPrefix+kind, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache taxonomy list", zap.String("kind", kind), zap.Error(err))
	}
}

// fingerprint renders a filter into a stable key fragment. Absent facets and
// match-all sentinels render identically, mirroring the query builder. Facet
// values are escaped so a value containing the segment separators cannot
// collide with a differently-filtered key.
func fingerprint(f domain.SearchFilter) string {
	q, cat, loc, price, seller := "", "", "", "", ""
	if f.HasQuery() {
		q = url.QueryEscape(*f.Query)
	}
	if f.HasCategory() {
		cat = url.QueryEscape(*f.Category)
	}
	if f.HasLocation() {
		loc = url.QueryEscape(*f.Location)
	}
	if f.PriceRange != nil {
		price = strconv.FormatFloat(f.PriceRange.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(f.PriceRange.Max, 'f', -1, 64)
	}
	if f.SellerID != nil && *f.SellerID != uuid.Nil {
		seller = f.SellerID.String()
	}
	return fmt.Sprintf("q=%s|c=%s|l=%s|p=%s|s=%s", q, cat, loc, price, seller)
}
