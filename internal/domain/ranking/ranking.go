// Package ranking holds per-query scoring results. Results are recomputed for
// every query and never stored on the catalog.
package ranking

import "github.com/kailas-cloud/filmrec/internal/domain/movie"

// Component positions within a Breakdown.
const (
	Adult = iota
	Genres
	Keywords
	Cast
	Era
	Director
	Acclaim
	NumComponents
)

// ComponentNames labels breakdown positions for display.
var ComponentNames = [NumComponents]string{
	"adult", "genres", "keywords", "cast", "era", "director", "acclaim",
}

// Breakdown is the ordered list of weighted component values for one
// (reference, candidate) pair. It is empty when the candidate is the reference.
type Breakdown []float64

// Total sums the components in order. An empty breakdown totals 0.
func (b Breakdown) Total() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// Ranked is one scored candidate.
type Ranked struct {
	movie     movie.Movie
	breakdown Breakdown
	total     float64
}

// New creates a ranked entry; total is derived from the breakdown.
func New(m movie.Movie, b Breakdown) Ranked {
	return Ranked{movie: m, breakdown: b, total: b.Total()}
}

// Movie returns the candidate.
func (r *Ranked) Movie() movie.Movie { return r.movie }

// Breakdown returns the component values.
func (r *Ranked) Breakdown() Breakdown { return r.breakdown }

// Total returns the summed score.
func (r *Ranked) Total() float64 { return r.total }
