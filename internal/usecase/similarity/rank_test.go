package similarity

import (
	"fmt"
	"testing"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
)

func mustCatalog(t *testing.T, movies ...movie.Movie) *movie.Catalog {
	t.Helper()
	c, err := movie.NewCatalog(movies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestRank_Scenario(t *testing.T) {
	a, b, c := scenario()
	cat := mustCatalog(t, c, a, b)

	ranked := Rank(&a, cat, 1)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ranked))
	}
	first := ranked[0].Movie()
	if first.Title() != "B" {
		t.Errorf("expected B first, got %q", first.Title())
	}
	// A (self, empty breakdown) and C both total 0 and keep catalog order.
	second, third := ranked[1].Movie(), ranked[2].Movie()
	if second.Title() != "C" || third.Title() != "A" {
		t.Errorf("expected C then A, got %q then %q", second.Title(), third.Title())
	}
	if len(ranked[2].Breakdown()) != 0 {
		t.Errorf("expected empty breakdown for reference, got %v", ranked[2].Breakdown())
	}
}

func TestRank_StableForTies(t *testing.T) {
	ref := film(1, "Ref", nil)
	var movies []movie.Movie
	movies = append(movies, ref)
	for i := 2; i <= 10; i++ {
		movies = append(movies, film(i, fmt.Sprintf("Twin %d", i), nil))
	}
	cat := mustCatalog(t, movies...)

	ranked := Rank(&ref, cat, 1)
	for i := 0; i < 9; i++ {
		m := ranked[i].Movie()
		if m.ID() != i+2 {
			t.Fatalf("position %d: expected id %d, got %d", i, i+2, m.ID())
		}
	}
	last := ranked[9].Movie()
	if last.ID() != 1 {
		t.Errorf("expected reference last, got id %d", last.ID())
	}
}

func TestRank_WorkersMatchSequential(t *testing.T) {
	ref := film(0, "Ref", func(a *movie.Attrs) {
		a.Genres = []string{"g0", "g1"}
		a.Keywords = []string{"k0", "k1", "k2"}
	})
	movies := []movie.Movie{ref}
	for i := 1; i < 3000; i++ {
		movies = append(movies, film(i, fmt.Sprintf("M%d", i), func(a *movie.Attrs) {
			a.Genres = []string{fmt.Sprintf("g%d", i%3)}
			a.Keywords = []string{fmt.Sprintf("k%d", i%5), fmt.Sprintf("k%d", i%7)}
			a.Popularity = float64(i % 9)
			a.VoteAverage = float64(i % 10)
			a.ReleaseDate = date(1950 + i%70)
		}))
	}
	cat := mustCatalog(t, movies...)

	seq := Rank(&ref, cat, 1)
	par := Rank(&ref, cat, 4)
	if len(seq) != len(par) {
		t.Fatalf("length mismatch: %d vs %d", len(seq), len(par))
	}
	for i := range seq {
		ms, mp := seq[i].Movie(), par[i].Movie()
		if ms.ID() != mp.ID() || seq[i].Total() != par[i].Total() {
			t.Fatalf("position %d: sequential id %d (%v), parallel id %d (%v)",
				i, ms.ID(), seq[i].Total(), mp.ID(), par[i].Total())
		}
	}
}

func TestRank_DoesNotMutateCatalog(t *testing.T) {
	a, b, c := scenario()
	cat := mustCatalog(t, a, b, c)
	before := cat.Fingerprint()

	_ = Rank(&a, cat, 1)
	_ = Rank(&b, cat, 2)

	if cat.Fingerprint() != before {
		t.Fatal("catalog fingerprint changed")
	}
	first := cat.At(0)
	if first.Title() != "A" {
		t.Errorf("expected catalog order untouched, got %q first", first.Title())
	}
}

func TestTop(t *testing.T) {
	a, b, c := scenario()
	ranked := Rank(&a, mustCatalog(t, a, b, c), 1)

	if got := Top(ranked, 2); len(got) != 2 {
		t.Errorf("expected 2, got %d", len(got))
	}
	if got := Top(ranked, 10); len(got) != 3 {
		t.Errorf("expected 3, got %d", len(got))
	}
}

func TestChunkCount(t *testing.T) {
	tests := []struct {
		n, workers, want int
	}{
		{100, 8, 1},
		{5000, 1, 1},
		{5000, 0, 1},
		{5000, 4, 4},
		{1500, 8, 2},
	}
	for _, tt := range tests {
		if got := chunkCount(tt.n, tt.workers); got != tt.want {
			t.Errorf("chunkCount(%d, %d) = %d, want %d", tt.n, tt.workers, got, tt.want)
		}
	}
}
