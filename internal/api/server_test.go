package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amaumene/cinedeck/internal/config"
	"github.com/amaumene/cinedeck/internal/controllers"
	"github.com/amaumene/cinedeck/internal/models"
	"github.com/amaumene/cinedeck/internal/services/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeCatalogAPI answers the catalog endpoints the controllers use
type fakeCatalogAPI struct {
	failing atomic.Bool

	mu      sync.Mutex
	queries []string
}

func (f *fakeCatalogAPI) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeCatalogAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries = append(f.queries, r.URL.RawQuery)
	f.mu.Unlock()

	if f.failing.Load() {
		http.Error(w, `{"status_message":"down"}`, http.StatusServiceUnavailable)
		return
	}

	var body interface{}
	switch r.URL.Path {
	case "/3/discover/movie", "/3/search/movie":
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		results := []models.Movie{
			{ID: page*10 + 1, Title: fmt.Sprintf("Movie %d", page*10+1), VoteAverage: 6.1},
			{ID: page*10 + 2, Title: fmt.Sprintf("Movie %d", page*10+2), VoteAverage: 8.4},
		}
		body = map[string]interface{}{"page": page, "results": results, "total_pages": 3}
	case "/3/genre/movie/list":
		body = map[string]interface{}{"genres": []models.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}}
	case "/3/movie/603":
		body = models.MovieDetails{ID: 603, Title: "The Matrix", Runtime: 136}
	case "/3/movie/603/credits":
		body = map[string]interface{}{"id": 603, "cast": []models.CastMember{{ID: 6384, Name: "Keanu Reeves", Character: "Neo"}}}
	case "/3/movie/603/videos":
		body = map[string]interface{}{"id": 603, "results": []models.Video{
			{Key: "teaser", Site: "YouTube", Type: "Teaser"},
			{Key: "m8e-FF8MsqU", Site: "YouTube", Type: "Trailer"},
		}}
	case "/3/movie/603/recommendations":
		body = map[string]interface{}{"page": 1, "results": []models.Movie{{ID: 604, Title: "The Matrix Reloaded"}}, "total_pages": 1}
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

type testAPI struct {
	url      string
	catalog  *fakeCatalogAPI
	movies   *controllers.MovieController
	debounce *controllers.Debouncer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	logger := testLogger()

	fake := &fakeCatalogAPI{}
	upstream := httptest.NewServer(fake)
	t.Cleanup(upstream.Close)

	cfg := &config.Config{
		CatalogBaseURL:   upstream.URL + "/3",
		CatalogAPIKey:    "test-key",
		CatalogTimeout:   2 * time.Second,
		CatalogRateLimit: 100,
		ServerPort:       "0",
	}

	registry := prometheus.NewRegistry()
	metrics, err := catalog.NewMetrics(registry)
	require.NoError(t, err)
	client, err := catalog.NewClient(cfg, metrics, logger)
	require.NoError(t, err)

	store := models.NewMemoryStore()
	movieCtrl := controllers.NewMovieController(client, store, logger)
	debouncer := controllers.NewDebouncer(100*time.Millisecond, func(query string) {
		movieCtrl.Search(context.Background(), query)
	})
	t.Cleanup(debouncer.Stop)

	server := NewServer(cfg, Controllers{
		Movies:  movieCtrl,
		Details: controllers.NewDetailsController(client, movieCtrl, logger),
		Genres:  controllers.NewGenreController(client, time.Hour, logger),
		Session: controllers.NewSessionController(store, logger),
		Theme:   controllers.NewThemeController(store, logger),
		Search:  debouncer,
	}, registry, logger)

	api := httptest.NewServer(server.Router())
	t.Cleanup(api.Close)

	return &testAPI{url: api.URL, catalog: fake, movies: movieCtrl, debounce: debouncer}
}

func (a *testAPI) do(t *testing.T, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.url+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

type listing struct {
	Movies     []models.Movie `json:"movies"`
	Query      string         `json:"query"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Filters    models.Filters `json:"filters"`
	Error      string         `json:"error"`
	HasMore    bool           `json:"has_more"`
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	code, body := api.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))
}

func TestFiltersAndPagination(t *testing.T) {
	api := newTestAPI(t)

	code, body := api.do(t, http.MethodGet, "/api/movies", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[listing](t, body).Movies)

	code, body = api.do(t, http.MethodPut, "/api/filters", `{"genre":28,"year":1999}`)
	require.Equal(t, http.StatusOK, code, string(body))
	first := decode[listing](t, body)
	assert.Len(t, first.Movies, 2)
	assert.Equal(t, 2, first.Page)
	assert.Equal(t, 3, first.TotalPages)
	assert.True(t, first.HasMore)
	assert.Contains(t, api.catalog.lastQuery(), "with_genres=28")
	assert.Contains(t, api.catalog.lastQuery(), "primary_release_year=1999")
	assert.NotContains(t, api.catalog.lastQuery(), "vote_average.gte")

	code, body = api.do(t, http.MethodGet, "/api/filters", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"genre":28,"year":1999}`, string(body))

	code, body = api.do(t, http.MethodPost, "/api/movies/more", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[listing](t, body).Movies, 4)

	code, _ = api.do(t, http.MethodPost, "/api/movies/more", "")
	require.Equal(t, http.StatusOK, code)

	code, _ = api.do(t, http.MethodPost, "/api/movies/more", "")
	assert.Equal(t, http.StatusConflict, code)

	code, body = api.do(t, http.MethodGet, "/api/top-picks?limit=2", "")
	require.Equal(t, http.StatusOK, code)
	picks := decode[[]models.Movie](t, body)
	require.Len(t, picks, 2)
	assert.Equal(t, 8.4, picks[0].VoteAverage)

	code, body = api.do(t, http.MethodDelete, "/api/filters", "")
	require.Equal(t, http.StatusOK, code)
	cleared := decode[listing](t, body)
	assert.Len(t, cleared.Movies, 2)
	assert.Equal(t, 0, cleared.Filters.ActiveCount())
}

func TestInvalidFilterRejected(t *testing.T) {
	api := newTestAPI(t)

	code, _ := api.do(t, http.MethodPut, "/api/filters", `{"year":99}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(t, http.MethodPut, "/api/filters", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(t, http.MethodGet, "/api/top-picks?limit=zero", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCatalogFailureKeepsList(t *testing.T) {
	api := newTestAPI(t)

	code, _ := api.do(t, http.MethodPut, "/api/filters", `{}`)
	require.Equal(t, http.StatusOK, code)

	api.catalog.failing.Store(true)
	code, _ = api.do(t, http.MethodPost, "/api/movies/more", "")
	assert.Equal(t, http.StatusBadGateway, code)

	code, body := api.do(t, http.MethodGet, "/api/movies", "")
	require.Equal(t, http.StatusOK, code)
	state := decode[listing](t, body)
	assert.Len(t, state.Movies, 2)
	assert.Equal(t, 2, state.Page)
	assert.NotEmpty(t, state.Error)
	assert.NotContains(t, state.Error, "test-key")

	code, _ = api.do(t, http.MethodDelete, "/api/error", "")
	assert.Equal(t, http.StatusNoContent, code)

	_, body = api.do(t, http.MethodGet, "/api/movies", "")
	assert.Empty(t, decode[listing](t, body).Error)
}

func TestDebouncedSearch(t *testing.T) {
	api := newTestAPI(t)

	for _, q := range []string{"ali", "alie", "alien"} {
		code, _ := api.do(t, http.MethodPost, "/api/search", fmt.Sprintf(`{"query":%q}`, q))
		require.Equal(t, http.StatusAccepted, code)
	}

	assert.Eventually(t, func() bool {
		return api.movies.State().Query == "alien"
	}, 2*time.Second, 10*time.Millisecond)

	code, body := api.do(t, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, decode[[]string](t, body), "alien")

	code, body = api.do(t, http.MethodGet, "/api/history/suggest?q=alen", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, decode[[]string](t, body), "alien")

	code, _ = api.do(t, http.MethodDelete, "/api/history", "")
	assert.Equal(t, http.StatusNoContent, code)
	_, body = api.do(t, http.MethodGet, "/api/history", "")
	assert.JSONEq(t, `[]`, string(body))
}

func TestFavoritesRequireLogin(t *testing.T) {
	api := newTestAPI(t)
	matrix := `{"id":603,"title":"The Matrix"}`

	code, _ := api.do(t, http.MethodPost, "/api/favorites", matrix)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := api.do(t, http.MethodPost, "/api/login", `{"username":"neo","password":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "please fill in all fields")

	code, body = api.do(t, http.MethodPost, "/api/login", `{"username":"neo","password":"zion"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"logged_in":true,"username":"neo"}`, string(body))

	code, _ = api.do(t, http.MethodPost, "/api/favorites", matrix)
	require.Equal(t, http.StatusOK, code)
	code, body = api.do(t, http.MethodPost, "/api/favorites", matrix)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Movie](t, body), 1)

	code, _ = api.do(t, http.MethodPost, "/api/favorites", `{"title":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(t, http.MethodDelete, "/api/favorites/42", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]models.Movie](t, body), 1)

	code, _ = api.do(t, http.MethodDelete, "/api/favorites/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(t, http.MethodDelete, "/api/favorites/603", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))

	code, body = api.do(t, http.MethodPost, "/api/logout", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"logged_in":false}`, string(body))

	code, _ = api.do(t, http.MethodDelete, "/api/favorites/603", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMovieDetails(t *testing.T) {
	api := newTestAPI(t)

	code, body := api.do(t, http.MethodGet, "/api/movies/603", "")
	require.Equal(t, http.StatusOK, code, string(body))

	bundle := decode[controllers.MovieBundle](t, body)
	assert.Equal(t, "The Matrix", bundle.Movie.Title)
	assert.Len(t, bundle.Cast, 1)
	require.NotNil(t, bundle.Trailer)
	assert.Equal(t, "m8e-FF8MsqU", bundle.Trailer.Key)
	assert.Len(t, bundle.Recommendations, 1)
	assert.False(t, bundle.IsFavorite)

	code, _ = api.do(t, http.MethodGet, "/api/movies/999", "")
	assert.Equal(t, http.StatusBadGateway, code)

	code, _ = api.do(t, http.MethodGet, "/api/movies/-1", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGenres(t *testing.T) {
	api := newTestAPI(t)

	code, body := api.do(t, http.MethodGet, "/api/genres", "")
	require.Equal(t, http.StatusOK, code)
	genres := decode[[]models.Genre](t, body)
	assert.Len(t, genres, 2)
}

func TestTheme(t *testing.T) {
	api := newTestAPI(t)

	_, body := api.do(t, http.MethodGet, "/api/theme", "")
	assert.JSONEq(t, `{"mode":"dark"}`, string(body))

	code, body := api.do(t, http.MethodPost, "/api/theme/toggle", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"mode":"light"}`, string(body))

	code, _ = api.do(t, http.MethodPut, "/api/theme", `{"mode":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = api.do(t, http.MethodPut, "/api/theme", `{"mode":"dark"}`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"mode":"dark"}`, string(body))
}

func TestStatusAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	code, _ := api.do(t, http.MethodPut, "/api/filters", `{"rating":7.5}`)
	require.Equal(t, http.StatusOK, code)

	code, body := api.do(t, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"movies": 2, "query": "", "next_page": 2, "total_pages": 3,
		"active_filters": 1, "loading": false, "favorites": 0, "history": 0,
		"logged_in": false, "theme": "dark"
	}`, string(body))

	code, body = api.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `cinedeck_catalog_requests_total{endpoint="discover",outcome="success"} 1`)
}
