package chi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/domain"
	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
	"github.com/kailas-cloud/filmrec/internal/metrics"
	healthuc "github.com/kailas-cloud/filmrec/internal/usecase/health"
	"github.com/kailas-cloud/filmrec/internal/usecase/query"
	"github.com/kailas-cloud/filmrec/internal/version"
)

// maxTopN caps the top query parameter.
const maxTopN = 100

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeNoMatch      = "no_match"
	CodeInternal     = "internal_error"
)

// recommender is the consumer interface for the similarity engine (ISP).
type recommender interface {
	Recommend(ctx context.Context, ref movie.Movie, topN int) ([]ranking.Ranked, error)
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the JSON body of /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// MovieRef identifies a movie in responses.
type MovieRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Recommendation is one ranked candidate.
type Recommendation struct {
	MovieRef
	VoteAverage float64   `json:"vote_average"`
	Popularity  float64   `json:"popularity"`
	Genres      []string  `json:"genres"`
	Keywords    []string  `json:"keywords"`
	Total       float64   `json:"total"`
	Breakdown   []float64 `json:"breakdown"`
}

// RecommendationsResponse is the JSON body of /v1/recommendations.
type RecommendationsResponse struct {
	Reference MovieRef         `json:"reference"`
	Results   []Recommendation `json:"results"`
}

// Server serves the HTTP surface: ops endpoints plus read-only recommendations.
type Server struct {
	catalog *movie.Catalog
	rec     recommender
	health  *healthuc.Service
	topN    int
	logger  *zap.Logger
}

// NewServer creates an HTTP server. topN is the default result count.
func NewServer(
	catalog *movie.Catalog,
	rec recommender,
	health *healthuc.Service,
	topN int,
	logger *zap.Logger,
) *Server {
	return &Server{catalog: catalog, rec: rec, health: health, topN: topN, logger: logger}
}

// Router builds the chi router with middlewares.
func (s *Server) Router(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.HealthCheck)
	r.Get("/version", s.Version)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/v1", func(r chi.Router) {
		r.Get("/recommendations", s.Recommendations)
	})
	return r
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Version handles GET /version.
func (s *Server) Version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

// Recommendations handles GET /v1/recommendations?title=...&top=N.
func (s *Server) Recommendations(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "title is required")
		return
	}

	topN := s.topN
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTopN {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "top must be an integer between 1 and 100")
			return
		}
		topN = n
	}

	matches, err := query.Resolve(s.catalog, title)
	if errors.Is(err, domain.ErrNoMatch) {
		writeError(w, http.StatusNotFound, CodeNoMatch, domain.ErrNoMatch.Error())
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	ref := query.Pick(matches, title)

	ranked, err := s.rec.Recommend(r.Context(), ref, topN)
	if err != nil {
		s.internalError(w, err)
		return
	}

	resp := RecommendationsResponse{
		Reference: MovieRef{ID: ref.ID(), Title: ref.Title()},
		Results:   make([]Recommendation, len(ranked)),
	}
	for i := range ranked {
		resp.Results[i] = recommendationFrom(&ranked[i])
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("Request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

func recommendationFrom(r *ranking.Ranked) Recommendation {
	m := r.Movie()
	b := r.Breakdown()
	if b == nil {
		b = ranking.Breakdown{}
	}
	return Recommendation{
		MovieRef:    MovieRef{ID: m.ID(), Title: m.Title()},
		VoteAverage: m.VoteAverage(),
		Popularity:  m.Popularity(),
		Genres:      m.Genres(),
		Keywords:    m.Keywords(),
		Total:       r.Total(),
		Breakdown:   b,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
