// Package raw holds untyped table rows as read from delimited text.
// A nil cell is a null (empty in the source file).
package raw

// Table names used in error messages and exclusion reports.
const (
	TableMetadata = "metadata"
	TableKeywords = "keywords"
	TableCredits  = "credits"
	TableCatalog  = "catalog"
)

// Metadata column names.
const (
	ColAdult               = "adult"
	ColGenres              = "genres"
	ColID                  = "id"
	ColOriginalLanguage    = "original_language"
	ColOverview            = "overview"
	ColPopularity          = "popularity"
	ColProductionCompanies = "production_companies"
	ColReleaseDate         = "release_date"
	ColTitle               = "title"
	ColVoteAverage         = "vote_average"
	ColKeywords            = "keywords"
	ColCast                = "cast"
	ColCrew                = "crew"
	ColDirector            = "director"
)

// MetadataColumns are the metadata columns the pipeline projects to.
var MetadataColumns = []string{
	ColAdult, ColGenres, ColID, ColOriginalLanguage, ColOverview, ColPopularity,
	ColProductionCompanies, ColReleaseDate, ColTitle, ColVoteAverage,
}

// KeywordsColumns are the required keywords table columns.
var KeywordsColumns = []string{ColID, ColKeywords}

// CreditsColumns are the required credits table columns.
var CreditsColumns = []string{ColID, ColCast, ColCrew}

// CatalogColumns is the persisted catalog layout, in write order.
var CatalogColumns = []string{
	ColID, ColAdult, ColGenres, ColOriginalLanguage, ColOverview, ColPopularity,
	ColProductionCompanies, ColReleaseDate, ColTitle, ColVoteAverage,
	ColKeywords, ColCast, ColDirector,
}

// MetadataRow is one row of the movie metadata table.
type MetadataRow struct {
	Adult               *string
	Genres              *string
	ID                  *string
	OriginalLanguage    *string
	Overview            *string
	Popularity          *string
	ProductionCompanies *string
	ReleaseDate         *string
	Title               *string
	VoteAverage         *string
}

// KeywordsRow is one row of the keywords table.
type KeywordsRow struct {
	ID       *string
	Keywords *string
}

// CreditsRow is one row of the credits table.
type CreditsRow struct {
	ID   *string
	Cast *string
	Crew *string
}

// CatalogRow is one row of a persisted canonical catalog. List columns are encoded.
type CatalogRow struct {
	ID                  *string
	Adult               *string
	Genres              *string
	OriginalLanguage    *string
	Overview            *string
	Popularity          *string
	ProductionCompanies *string
	ReleaseDate         *string
	Title               *string
	VoteAverage         *string
	Keywords            *string
	Cast                *string
	Director            *string
}

// Cell returns a pointer to s, for building rows.
func Cell(s string) *string { return &s }

// Value returns the cell text, or "" for null.
func Value(c *string) string {
	if c == nil {
		return ""
	}
	return *c
}
