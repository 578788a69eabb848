// Package query resolves free-text title queries against the catalog.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
)

// wordChar is the class of characters that cannot surround a whole-word match.
const wordChar = `\p{L}\p{N}_`

// Resolve returns catalog movies whose title contains every whitespace-separated
// token of text as a whole word, ignoring case. Matches keep catalog order.
// An empty query or a query without matches returns ErrNoMatch.
func Resolve(catalog *movie.Catalog, text string) ([]movie.Movie, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, domain.ErrNoMatch
	}

	patterns := make([]*regexp.Regexp, len(tokens))
	for i, tok := range tokens {
		patterns[i] = wholeWord(tok)
	}

	var matches []movie.Movie
	for i := range catalog.Len() {
		m := catalog.At(i)
		if matchesAll(m.Title(), patterns) {
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%q: %w", text, domain.ErrNoMatch)
	}
	return matches, nil
}

// Select picks a match by its 0-based index as typed by the user.
func Select(matches []movie.Movie, input string) (movie.Movie, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || idx < 0 || idx >= len(matches) {
		return movie.Movie{}, &domain.SelectionError{Input: input, Max: len(matches)}
	}
	return matches[idx], nil
}

// Pick chooses the movie a non-interactive caller meant: a title equal to text
// ignoring case and surrounding space, otherwise the first match.
func Pick(matches []movie.Movie, text string) movie.Movie {
	want := strings.TrimSpace(text)
	for i := range matches {
		if strings.EqualFold(matches[i].Title(), want) {
			return matches[i]
		}
	}
	return matches[0]
}

func wholeWord(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^` + wordChar + `])` + regexp.QuoteMeta(token) + `(?:[^` + wordChar + `]|$)`)
}

func matchesAll(title string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if !p.MatchString(title) {
			return false
		}
	}
	return true
}
