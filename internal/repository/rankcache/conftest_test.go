package rankcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/db"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
)

type mockRecommender struct {
	result []ranking.Ranked
	err    error
	calls  int
}

func (m *mockRecommender) Recommend(_ context.Context, _ movie.Movie, _ int) ([]ranking.Ranked, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn     func(ctx context.Context, key string) ([]byte, error)
	setFn     func(ctx context.Context, key string, value []byte) error
	setTTLFn  func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	delFn     func(ctx context.Context, key string) error
	lastKey   string
	lastValue []byte
	deleted   []string
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	m.lastKey, m.lastValue = key, value
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.lastKey, m.lastValue = key, value
	if m.setTTLFn != nil {
		return m.setTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockKVStore) Del(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func testMovie(id int, title string) movie.Movie {
	return movie.Reconstruct(movie.Attrs{
		ID:               id,
		Title:            title,
		OriginalLanguage: "en",
		ReleaseDate:      time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC),
	})
}

func testCatalog(t *testing.T) *movie.Catalog {
	t.Helper()
	c, err := movie.NewCatalog([]movie.Movie{
		testMovie(949, "Heat"),
		testMovie(11, "Star Wars"),
		testMovie(862, "Toy Story"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func testRanking(c *movie.Catalog) []ranking.Ranked {
	sw, _ := c.ByID(11)
	ts, _ := c.ByID(862)
	heat, _ := c.ByID(949)
	return []ranking.Ranked{
		ranking.New(sw, ranking.Breakdown{0.1, 0.3, 0, 0, 0.2, 0, 1.01}),
		ranking.New(ts, ranking.Breakdown{0.1, 0, 0, 0, 0.2, 0, 0.96}),
		ranking.New(heat, ranking.Breakdown{}),
	}
}

func newTestCachedRecommender(t *testing.T, inner *mockRecommender, ttl time.Duration) (*CachedRecommender, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cr := New(inner, testCatalog(t), ms, ttl, nil, zap.NewNop())
	return cr, ms
}
