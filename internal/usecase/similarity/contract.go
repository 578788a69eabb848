package similarity

import (
	"context"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
)

// Recommender returns the best matches for a reference movie.
type Recommender interface {
	Recommend(ctx context.Context, ref movie.Movie, topN int) ([]ranking.Ranked, error)
}
