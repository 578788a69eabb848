package chi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/kailas-cloud/filmrec/internal/domain/movie"
	"github.com/kailas-cloud/filmrec/internal/domain/ranking"
	healthuc "github.com/kailas-cloud/filmrec/internal/usecase/health"
	"github.com/kailas-cloud/filmrec/internal/version"
)

type mockRecommender struct {
	ref  movie.Movie
	topN int
	err  error
}

func (m *mockRecommender) Recommend(_ context.Context, ref movie.Movie, topN int) ([]ranking.Ranked, error) {
	m.ref, m.topN = ref, topN
	if m.err != nil {
		return nil, m.err
	}
	return []ranking.Ranked{
		ranking.New(ref, ranking.Breakdown{}),
	}, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func testCatalog(t *testing.T) *movie.Catalog {
	t.Helper()
	var movies []movie.Movie
	for i, title := range []string{"Heat Wave", "Heat", "Toy Story"} {
		movies = append(movies, movie.Reconstruct(movie.Attrs{
			ID: i + 1, Title: title, OriginalLanguage: "en",
			ReleaseDate: time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC),
			Genres:      []string{"Drama"}, Keywords: []string{},
		}))
	}
	c, err := movie.NewCatalog(movies)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func newTestRouter(t *testing.T, rec *mockRecommender, cacheErr error, keys ...string) http.Handler {
	t.Helper()
	cat := testCatalog(t)
	health := healthuc.New(cat, &mockPinger{err: cacheErr})
	return NewServer(cat, rec, health, 5, zap.NewNop()).Router(keys)
}

func get(h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRecommendations_Success(t *testing.T) {
	rec := &mockRecommender{}
	h := newTestRouter(t, rec, nil)

	rr := get(h, "/v1/recommendations?title=heat&top=3")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rec.topN != 3 {
		t.Errorf("expected topN 3, got %d", rec.topN)
	}
	if rec.ref.Title() != "Heat" {
		t.Errorf("expected exact title Heat picked, got %q", rec.ref.Title())
	}

	var resp RecommendationsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reference.ID != 2 || len(resp.Results) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Results[0].Breakdown == nil {
		t.Error("expected empty breakdown array, got null")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRecommendations_DefaultTop(t *testing.T) {
	rec := &mockRecommender{}
	h := newTestRouter(t, rec, nil)

	if rr := get(h, "/v1/recommendations?title=toy"); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rec.topN != 5 {
		t.Errorf("expected default topN 5, got %d", rec.topN)
	}
}

func TestRecommendations_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
		code   string
	}{
		{"missing title", "/v1/recommendations", nil, http.StatusBadRequest, CodeBadRequest},
		{"bad top", "/v1/recommendations?title=heat&top=abc", nil, http.StatusBadRequest, CodeBadRequest},
		{"top too large", "/v1/recommendations?title=heat&top=101", nil, http.StatusBadRequest, CodeBadRequest},
		{"no match", "/v1/recommendations?title=alien", nil, http.StatusNotFound, CodeNoMatch},
		{"recommender failure", "/v1/recommendations?title=heat", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, &mockRecommender{err: tt.err}, nil)
			rr := get(h, tt.target)
			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, resp.Code)
			}
		})
	}
}

func TestRecommendations_Auth(t *testing.T) {
	h := newTestRouter(t, &mockRecommender{}, nil, "secret")

	if rr := get(h, "/v1/recommendations?title=heat"); rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rr.Code)
	}
	if rr := get(h, "/v1/recommendations?title=heat", "Authorization", "Bearer secret"); rr.Code != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", rr.Code)
	}
	if rr := get(h, "/healthz"); rr.Code != http.StatusOK {
		t.Errorf("expected healthz exempt from auth, got %d", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	rr := get(newTestRouter(t, &mockRecommender{}, nil), "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["catalog"] != "ok" || resp.Checks["cache"] != "ok" {
		t.Errorf("unexpected report: %+v", resp)
	}

	rr = get(newTestRouter(t, &mockRecommender{}, errors.New("down")), "/healthz")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 with failing cache, got %d", rr.Code)
	}
}

func TestVersion(t *testing.T) {
	rr := get(newTestRouter(t, &mockRecommender{}, nil), "/version")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp version.Info
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != version.Version {
		t.Errorf("expected version %q, got %q", version.Version, resp.Version)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rr := get(newTestRouter(t, &mockRecommender{}, nil), "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.Len() == 0 {
		t.Error("expected non-empty metrics response")
	}
}

func TestRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := get(h, "/")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
