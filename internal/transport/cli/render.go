package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
)

func renderMatches(w io.Writer, matches []movie.Movie) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i := range matches {
		fmt.Fprintf(tw, "%d\t%s\n", i, matches[i].Title())
	}
	fmt.Fprintln(tw)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render matches: %w", err)
	}
	return nil
}

func renderRanking(w io.Writer, ranked []ranking.Ranked) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\ttitle\tvote_average\tpopularity\tgenres\tkeywords\tsimilarity\tbreakdown")
	for i := range ranked {
		m := ranked[i].Movie()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i,
			m.Title(),
			formatFloat(m.VoteAverage()),
			formatFloat(m.Popularity()),
			list(m.Genres()),
			list(m.Keywords()),
			strconv.FormatFloat(ranked[i].Total(), 'f', 4, 64),
			breakdown(ranked[i].Breakdown()),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render ranking: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func list(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func breakdown(b ranking.Breakdown) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = strconv.FormatFloat(v, 'g', 4, 64)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
