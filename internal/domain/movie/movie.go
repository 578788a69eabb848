package movie

import (
	"time"

	"github.com/kailas-cloud/filmrec/internal/domain"
)

// MaxCast is the number of top-billed cast members kept per movie.
const MaxCast = 5

// DateLayout is the calendar date layout used for release dates.
const DateLayout = "2006-01-02"

// Attrs carries the fields of a Movie for construction.
type Attrs struct {
	ID                  int
	Adult               bool
	Genres              []string
	OriginalLanguage    string
	Overview            string
	Popularity          float64
	ProductionCompanies []string
	ReleaseDate         time.Time
	Title               string
	VoteAverage         float64
	Keywords            []string
	Cast                []string
	Director            string
}

// Movie is the canonical catalog record (immutable value object).
type Movie struct {
	id                  int
	adult               bool
	genres              []string
	originalLanguage    string
	overview            string
	popularity          float64
	productionCompanies []string
	releaseDate         time.Time
	title               string
	voteAverage         float64
	keywords            []string
	cast                []string
	director            string
}

// New validates and creates a Movie.
// Title and original language must be non-empty, the release date set, cast at most MaxCast.
// List fields are copied; nil lists become empty.
func New(a Attrs) (Movie, error) {
	if a.Title == "" {
		return Movie{}, domain.NewValidation("title", "", "is required")
	}
	if a.OriginalLanguage == "" {
		return Movie{}, domain.NewValidation("original_language", "", "is required")
	}
	if a.ReleaseDate.IsZero() {
		return Movie{}, domain.NewValidation("release_date", "", "is required")
	}
	if len(a.Cast) > MaxCast {
		return Movie{}, domain.NewValidation("cast", "", "has more than 5 entries")
	}
	return Movie{
		id:                  a.ID,
		adult:               a.Adult,
		genres:              cloneStrings(a.Genres),
		originalLanguage:    a.OriginalLanguage,
		overview:            a.Overview,
		popularity:          a.Popularity,
		productionCompanies: cloneStrings(a.ProductionCompanies),
		releaseDate:         a.ReleaseDate,
		title:               a.Title,
		voteAverage:         a.VoteAverage,
		keywords:            cloneStrings(a.Keywords),
		cast:                cloneStrings(a.Cast),
		director:            a.Director,
	}, nil
}

// Reconstruct creates a Movie without validation (test fixtures, storage hydration).
// List fields are copied as in New.
func Reconstruct(a Attrs) Movie {
	return Movie{
		id: a.ID, adult: a.Adult, genres: cloneStrings(a.Genres),
		originalLanguage: a.OriginalLanguage, overview: a.Overview,
		popularity: a.Popularity, productionCompanies: cloneStrings(a.ProductionCompanies),
		releaseDate: a.ReleaseDate, title: a.Title, voteAverage: a.VoteAverage,
		keywords: cloneStrings(a.Keywords), cast: cloneStrings(a.Cast), director: a.Director,
	}
}

// ID returns the movie identifier.
func (m *Movie) ID() int { return m.id }

// Adult reports the adult flag.
func (m *Movie) Adult() bool { return m.adult }

// Genres returns a copy of the genre names in source order.
func (m *Movie) Genres() []string { return cloneStrings(m.genres) }

// OriginalLanguage returns the original language code.
func (m *Movie) OriginalLanguage() string { return m.originalLanguage }

// Overview returns the plot overview (may be empty).
func (m *Movie) Overview() string { return m.overview }

// Popularity returns the popularity metric.
func (m *Movie) Popularity() float64 { return m.popularity }

// ProductionCompanies returns a copy of the production company names in source order.
func (m *Movie) ProductionCompanies() []string { return cloneStrings(m.productionCompanies) }

// ReleaseDate returns the release date.
func (m *Movie) ReleaseDate() time.Time { return m.releaseDate }

// Title returns the title.
func (m *Movie) Title() string { return m.title }

// VoteAverage returns the average vote.
func (m *Movie) VoteAverage() float64 { return m.voteAverage }

// Keywords returns a copy of the keyword names in source order.
func (m *Movie) Keywords() []string { return cloneStrings(m.keywords) }

// Cast returns a copy of up to MaxCast cast names by ascending billing order.
func (m *Movie) Cast() []string { return cloneStrings(m.cast) }

// Director returns the director name, or "" when the crew lists none.
func (m *Movie) Director() string { return m.director }

// Attrs returns a copy of the movie fields.
func (m *Movie) Attrs() Attrs {
	return Attrs{
		ID: m.id, Adult: m.adult, Genres: cloneStrings(m.genres),
		OriginalLanguage: m.originalLanguage, Overview: m.overview,
		Popularity: m.popularity, ProductionCompanies: cloneStrings(m.productionCompanies),
		ReleaseDate: m.releaseDate, Title: m.title, VoteAverage: m.voteAverage,
		Keywords: cloneStrings(m.keywords), Cast: cloneStrings(m.cast), Director: m.director,
	}
}

func cloneStrings(s []string) []string {
	c := make([]string, len(s))
	copy(c, s)
	return c
}
