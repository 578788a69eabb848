// Package cli implements the interactive recommendation prompt.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/logger"
	"github.com/kailas-cloud/filmrec/internal/usecase/query"
)

// Prompts and messages shown to the user.
const (
	PromptTitle   = "Select movie to recommend on: "
	PromptIndex   = "Input the index of the desired movie: "
	PromptAgain   = "Do you want another recommendation? (y/n): "
	MsgNoMatch    = "No match found, try again"
	MsgBadIndex   = "Invalid input"
	answerAnother = "y"
)

// errEOF signals that input ended mid-dialog.
var errEOF = errors.New("input closed")

// Session runs the prompt loop over a reader and a writer.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	catalog *movie.Catalog
	rec     recommender
	topN    int

	startReader sync.Once
	lines       chan inputLine
}

// inputLine is one scanned line, or the terminal read error (errEOF on clean end).
type inputLine struct {
	text string
	err  error
}

// NewSession creates a session. topN is the number of rows shown per recommendation.
func NewSession(in io.Reader, out io.Writer, catalog *movie.Catalog, rec recommender, topN int) *Session {
	return &Session{
		in:      bufio.NewScanner(in),
		out:     out,
		catalog: catalog,
		rec:     rec,
		topN:    topN,
		lines:   make(chan inputLine),
	}
}

// Run loops until the user declines another recommendation or input ends.
// End of input is not an error; cancellation of ctx returns ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck // cancellation is returned as is
		}
		ref, err := s.pickMovie(ctx)
		if errors.Is(err, errEOF) {
			return nil
		}
		if err != nil {
			return err
		}

		log.Debug("Reference selected", zap.Int("id", ref.ID()), zap.String("title", ref.Title()))
		refCtx := logger.With(ctx, zap.Int("ref_id", ref.ID()))
		if err := s.recommend(refCtx, ref); err != nil {
			return err
		}

		answer, err := s.ask(ctx, PromptAgain)
		if errors.Is(err, errEOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) != answerAnother {
			return nil
		}
	}
}

// Once resolves title and prints recommendations without prompting.
// With several matches an exact title (ignoring case) wins, otherwise the first match.
func (s *Session) Once(ctx context.Context, title string) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck // cancellation is returned as is
	}
	matches, err := query.Resolve(s.catalog, title)
	if err != nil {
		return fmt.Errorf("resolve title: %w", err)
	}
	return s.recommend(ctx, query.Pick(matches, title))
}

func (s *Session) pickMovie(ctx context.Context) (movie.Movie, error) {
	var matches []movie.Movie
	for {
		text, err := s.ask(ctx, PromptTitle)
		if err != nil {
			return movie.Movie{}, err
		}
		matches, err = query.Resolve(s.catalog, text)
		if errors.Is(err, domain.ErrNoMatch) {
			s.say(MsgNoMatch + "\n")
			continue
		}
		if err != nil {
			return movie.Movie{}, err
		}
		break
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	if err := renderMatches(s.out, matches); err != nil {
		return movie.Movie{}, err
	}
	for {
		text, err := s.ask(ctx, PromptIndex)
		if err != nil {
			return movie.Movie{}, err
		}
		m, err := query.Select(matches, text)
		if errors.Is(err, domain.ErrSelection) {
			s.say(MsgBadIndex + "\n")
			continue
		}
		if err != nil {
			return movie.Movie{}, err
		}
		return m, nil
	}
}

func (s *Session) recommend(ctx context.Context, ref movie.Movie) error {
	ranked, err := s.rec.Recommend(ctx, ref, s.topN)
	if err != nil {
		return fmt.Errorf("recommend %q: %w", ref.Title(), err)
	}
	return renderRanking(s.out, ranked)
}

// ask prints prompt and waits for the next line or cancellation of ctx.
func (s *Session) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err //nolint:wrapcheck // cancellation is returned as is
	}
	if _, err := io.WriteString(s.out, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	s.startReader.Do(func() { go s.readLines() })

	select {
	case <-ctx.Done():
		return "", ctx.Err() //nolint:wrapcheck // cancellation is returned as is
	case l, ok := <-s.lines:
		if !ok {
			return "", errEOF
		}
		return l.text, l.err
	}
}

// readLines feeds s.lines until input ends. A blocked terminal read cannot be
// interrupted, so the goroutine outlives a cancelled session until stdin closes.
func (s *Session) readLines() {
	defer close(s.lines)
	for s.in.Scan() {
		s.lines <- inputLine{text: s.in.Text()}
	}
	if err := s.in.Err(); err != nil {
		s.lines <- inputLine{err: fmt.Errorf("read input: %w", err)}
		return
	}
	s.lines <- inputLine{err: errEOF}
}

func (s *Session) say(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}
