package similarity

import (
	"sort"
	"sync"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
)

// minChunk is the smallest number of candidates handed to one worker.
const minChunk = 512

// Rank scores every catalog movie against ref and orders them by total score,
// highest first. Equal totals keep catalog order.
// With workers > 1 candidates are scored concurrently; the output is identical.
func Rank(ref *movie.Movie, catalog *movie.Catalog, workers int) []ranking.Ranked {
	n := catalog.Len()
	out := make([]ranking.Ranked, n)

	score := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			cand := catalog.At(i)
			out[i] = ranking.New(cand, Score(ref, &cand))
		}
	}

	chunks := chunkCount(n, workers)
	if chunks <= 1 {
		score(0, n)
	} else {
		size := (n + chunks - 1) / chunks
		var wg sync.WaitGroup
		for lo := 0; lo < n; lo += size {
			hi := min(lo+size, n)
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				score(lo, hi)
			}(lo, hi)
		}
		wg.Wait()
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total() > out[j].Total()
	})
	return out
}

// Top returns at most n leading entries.
func Top(ranked []ranking.Ranked, n int) []ranking.Ranked {
	if n < len(ranked) {
		return ranked[:n]
	}
	return ranked
}

func chunkCount(n, workers int) int {
	if workers <= 1 || n < 2*minChunk {
		return 1
	}
	return min(workers, n/minChunk)
}
