package rankcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/db"
	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
	"github.com/kailas-cloud/filmrec/internal/usecase/similarity"
)

// KeyPrefix namespaces all cached rankings.
const KeyPrefix = "filmrec:rank:"

// store is the consumer interface for the ranking cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Compile-time check: CachedRecommender implements similarity.Recommender.
var _ similarity.Recommender = (*CachedRecommender)(nil)

// entry is the cached form of one ranked candidate.
type entry struct {
	ID        int       `json:"id"`
	Breakdown []float64 `json:"breakdown"`
}

// CachedRecommender caches top-N rankings in a key-value store.
// Keys include the catalog fingerprint, so a rebuilt catalog never reads stale rankings.
type CachedRecommender struct {
	inner      similarity.Recommender
	catalog    *movie.Catalog
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
// ttl <= 0 stores entries without expiry.
func New(
	inner similarity.Recommender,
	catalog *movie.Catalog,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRecommender {
	return &CachedRecommender{
		inner:      inner,
		catalog:    catalog,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Recommend returns a cached ranking or computes it with the inner recommender.
// Cache failures are logged and never returned. An entry that no longer decodes
// against the catalog is deleted.
func (c *CachedRecommender) Recommend(ctx context.Context, ref movie.Movie, topN int) ([]ranking.Ranked, error) {
	key := c.cacheKey(ref.ID(), topN)

	if ranked, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return ranked, nil
	}

	c.incCache("miss")

	ranked, err := c.inner.Recommend(ctx, ref, topN)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	c.putToCache(ctx, key, ranked)
	return ranked, nil
}

func (c *CachedRecommender) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedRecommender) cacheKey(refID, topN int) string {
	return fmt.Sprintf("%s%s:%d:%d", KeyPrefix, c.catalog.Fingerprint(), refID, topN)
}

func (c *CachedRecommender) getFromCache(ctx context.Context, key string) ([]ranking.Ranked, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached ranking", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	ranked, err := c.decode(data)
	if err != nil {
		c.logger.Warn("Failed to parse cached ranking, evicting", zap.String("key", key), zap.Error(err))
		if err := c.store.Del(ctx, key); err != nil && !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to evict cached ranking", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return ranked, true
}

func (c *CachedRecommender) putToCache(ctx context.Context, key string, ranked []ranking.Ranked) {
	data, err := encode(ranked)
	if err != nil {
		c.logger.Warn("Failed to encode ranking", zap.String("key", key), zap.Error(err))
		return
	}
	if c.ttl > 0 {
		err = c.store.SetWithTTL(ctx, key, data, c.ttl)
	} else {
		err = c.store.Set(ctx, key, data)
	}
	if err != nil {
		c.logger.Warn("Failed to cache ranking", zap.String("key", key), zap.Error(err))
	}
}

func encode(ranked []ranking.Ranked) ([]byte, error) {
	entries := make([]entry, len(ranked))
	for i := range ranked {
		m := ranked[i].Movie()
		entries[i] = entry{ID: m.ID(), Breakdown: ranked[i].Breakdown()}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("marshal ranking: %w", err)
	}
	return data, nil
}

// decode hydrates cached entries from the catalog.
func (c *CachedRecommender) decode(data []byte) ([]ranking.Ranked, error) {
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal ranking: %w", err)
	}
	out := make([]ranking.Ranked, 0, len(entries))
	for _, e := range entries {
		if n := len(e.Breakdown); n != 0 && n != ranking.NumComponents {
			return nil, fmt.Errorf("movie %d: breakdown has %d components", e.ID, n)
		}
		m, ok := c.catalog.ByID(e.ID)
		if !ok {
			return nil, fmt.Errorf("movie %d: %w", e.ID, domain.ErrMovieNotFound)
		}
		out = append(out, ranking.New(m, ranking.Breakdown(e.Breakdown)))
	}
	return out, nil
}
