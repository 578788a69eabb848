package cli

import (
	"context"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
)

// recommender is the consumer interface for the similarity engine (ISP).
type recommender interface {
	Recommend(ctx context.Context, ref movie.Movie, topN int) ([]ranking.Ranked, error)
}
