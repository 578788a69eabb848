package similarity

import (
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
)

// Component weights and thresholds.
const (
	adultWeight       = 0.1
	genreWeight       = 0.3
	keywordWeight     = 5.0
	castWeight        = 0.15
	eraWeight         = 0.2
	eraMaxYears       = 30
	directorWeight    = 0.2
	acclaimMinPopular = 4.0
	acclaimDivisor    = 8.0
)

// Score compares a candidate against the reference movie.
//
// A candidate sharing the reference's title gets an empty breakdown. Otherwise all
// seven components are present, zero when their condition does not hold. The acclaim
// term depends on the candidate alone, so Score(a, b) and Score(b, a) may differ.
// Two movies without a director count as a director match.
func Score(ref, cand *movie.Movie) ranking.Breakdown {
	if ref.Title() == cand.Title() {
		return ranking.Breakdown{}
	}

	b := make(ranking.Breakdown, ranking.NumComponents)

	if ref.Adult() == cand.Adult() {
		b[ranking.Adult] = adultWeight
	}

	b[ranking.Genres] = genreWeight * float64(intersection(ref.Genres(), cand.Genres()))

	// Jaccard over keyword sets; an empty union scores 0.
	if union := unionSize(ref.Keywords(), cand.Keywords()); union > 0 {
		b[ranking.Keywords] = keywordWeight * float64(intersection(ref.Keywords(), cand.Keywords())) / float64(union)
	}

	b[ranking.Cast] = castWeight * float64(intersection(ref.Cast(), cand.Cast()))

	if abs(ref.ReleaseDate().Year()-cand.ReleaseDate().Year()) < eraMaxYears {
		b[ranking.Era] = eraWeight
	}

	if ref.Director() == cand.Director() {
		b[ranking.Director] = directorWeight
	}

	if cand.Popularity() > acclaimMinPopular {
		b[ranking.Acclaim] = cand.VoteAverage() / acclaimDivisor
	}

	return b
}

func toSet(items []string) map[string]struct{} {
	s := make(map[string]struct{}, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// intersection counts distinct values present in both lists.
func intersection(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	sa := toSet(a)
	n := 0
	for v := range toSet(b) {
		if _, ok := sa[v]; ok {
			n++
		}
	}
	return n
}

// unionSize counts distinct values present in either list.
func unionSize(a, b []string) int {
	s := toSet(a)
	for _, v := range b {
		s[v] = struct{}{}
	}
	return len(s)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
