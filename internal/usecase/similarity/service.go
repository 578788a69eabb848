package similarity

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
	"github.com/kailas-cloud/filmrec/internal/logger"
)

// DefaultTopN is the number of recommendations returned when none is configured.
const DefaultTopN = 5

// Compile-time check: Service implements Recommender.
var _ Recommender = (*Service)(nil)

// Service ranks the whole catalog for every query. The catalog is never modified.
type Service struct {
	catalog  *movie.Catalog
	workers  int
	duration prometheus.Observer
}

// New creates a similarity service over catalog.
func New(catalog *movie.Catalog) *Service {
	return &Service{catalog: catalog, workers: 1}
}

// WithWorkers sets the number of concurrent scoring workers (values below 1 mean 1).
func (s *Service) WithWorkers(n int) *Service {
	if n < 1 {
		n = 1
	}
	s.workers = n
	return s
}

// WithDuration records ranking latency in seconds.
func (s *Service) WithDuration(o prometheus.Observer) *Service {
	s.duration = o
	return s
}

// Catalog returns the catalog being ranked.
func (s *Service) Catalog() *movie.Catalog { return s.catalog }

// Recommend ranks the catalog against ref and returns the topN best entries
// with their score breakdowns.
func (s *Service) Recommend(ctx context.Context, ref movie.Movie, topN int) ([]ranking.Ranked, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("top n must be positive, got %d", topN)
	}
	start := time.Now()

	top := Top(Rank(&ref, s.catalog, s.workers), topN)

	took := time.Since(start)
	if s.duration != nil {
		s.duration.Observe(took.Seconds())
	}
	logger.FromContext(ctx).Debug("Catalog ranked",
		zap.Int("reference_id", ref.ID()),
		zap.Int("candidates", s.catalog.Len()),
		zap.Int("workers", s.workers),
		zap.Duration("took", took),
	)

	out := make([]ranking.Ranked, len(top))
	copy(out, top)
	return out, nil
}
