package controllers

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/amaumene/cinedeck/internal/services/catalog"
	"github.com/sirupsen/logrus"
)

// ErrNoMorePages is returned by LoadMore once the last page has been fetched
var ErrNoMorePages = errors.New("no more pages")

// DefaultTopPicks is the number of movies returned by TopPicks when n <= 0
const DefaultTopPicks = 10

// MovieCatalog lists movies page by page
type MovieCatalog interface {
	DiscoverOrSearch(ctx context.Context, query string, page int, filters models.Filters) (*catalog.Page, error)
}

// MovieState is a point-in-time copy of the browsing state
type MovieState struct {
	Movies     []models.Movie `json:"movies"`
	Query      string         `json:"query"`
	Page       int            `json:"page"` // next page to request
	TotalPages int            `json:"total_pages"`
	Filters    models.Filters `json:"filters"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

// HasMore reports whether another page can be loaded
func (s MovieState) HasMore() bool {
	return len(s.Movies) > 0 && s.Page <= s.TotalPages
}

// MovieController owns the displayed movie list, its pagination cursor and
// filters, the favorites list and the search history.
type MovieController struct {
	mu      sync.Mutex
	catalog MovieCatalog
	store   models.KeyValueStore
	logger  *logrus.Logger

	movies     []models.Movie
	query      string // query of the last successful fetch, continued by LoadMore
	searchTerm string // latest settled search text, reused by filter changes
	page       int
	totalPages int
	filters    models.Filters
	loading    bool
	lastError  string

	// generation identifies the most recently issued refresh;
	// responses from older generations are dropped.
	generation uint64
	cancel     context.CancelFunc

	favorites []models.Movie
	history   []string
}

// NewMovieController creates a movie controller and restores favorites and
// search history from store. Missing or unreadable entries start empty.
func NewMovieController(movieCatalog MovieCatalog, store models.KeyValueStore, logger *logrus.Logger) *MovieController {
	c := &MovieController{
		catalog:    movieCatalog,
		store:      store,
		logger:     logger,
		movies:     []models.Movie{},
		page:       1,
		totalPages: 1,
		favorites:  []models.Movie{},
		history:    []string{},
	}

	if err := models.LoadJSON(store, models.KeyFavorites, &c.favorites); err != nil {
		c.favorites = []models.Movie{}
		if !errors.Is(err, models.ErrKeyNotFound) {
			logger.WithError(err).Warn("Failed to restore favorites, starting empty")
		}
	}
	c.favorites = dedupeByID(nil, c.favorites)

	if err := models.LoadJSON(store, models.KeySearchHistory, &c.history); err != nil {
		c.history = []string{}
		if !errors.Is(err, models.ErrKeyNotFound) {
			logger.WithError(err).Warn("Failed to restore search history, starting empty")
		}
	}
	c.history = dedupeTerms(c.history)

	logger.WithFields(logrus.Fields{
		"favorites": len(c.favorites),
		"history":   len(c.history),
	}).Debug("Movie state restored")

	return c
}

// Refresh fetches one page of movies and reconciles it into the list.
// Page 1 replaces the list, later pages append to it. filters overrides the
// stored filter set for this call when non-nil.
//
// On failure the error slot is set and the list and cursor stay as they were.
// A call overtaken by a newer Refresh leaves all state to the newer call and
// returns nil.
func (c *MovieController) Refresh(ctx context.Context, query string, page int, filters *models.Filters) error {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	c.lastError = ""
	effective := c.filters.Clone()
	if filters != nil {
		effective = filters.Clone()
	}
	c.mu.Unlock()
	defer cancel()

	result, err := c.catalog.DiscoverOrSearch(reqCtx, query, page, effective)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.WithFields(logrus.Fields{
			"query": query,
			"page":  page,
		}).Debug("Discarding superseded movie response")
		return nil
	}

	c.loading = false
	c.cancel = nil

	if err != nil {
		c.lastError = err.Error()
		c.logger.WithError(err).WithFields(logrus.Fields{
			"query": query,
			"page":  page,
		}).Error("Failed to fetch movies")
		return err
	}

	if page == 1 {
		c.movies = dedupeByID(nil, result.Movies)
	} else {
		c.movies = dedupeByID(c.movies, result.Movies)
	}
	c.query = query
	c.page = page + 1
	c.totalPages = result.TotalPages

	c.logger.WithFields(logrus.Fields{
		"query":       query,
		"page":        page,
		"count":       len(c.movies),
		"total_pages": c.totalPages,
	}).Debug("Movies refreshed")

	return nil
}

// Search submits a settled search term: non-empty terms are recorded in the
// history, then the first page is fetched.
func (c *MovieController) Search(ctx context.Context, term string) error {
	term = normalizeTerm(term)
	if term != "" {
		if err := c.AddSearchTerm(term); err != nil {
			c.logger.WithError(err).Warn("Failed to record search term")
		}
	}

	c.mu.Lock()
	c.searchTerm = term
	c.mu.Unlock()

	return c.Refresh(ctx, term, 1, nil)
}

// LoadMore fetches the next page of the current query and appends it
func (c *MovieController) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	query, page, total := c.query, c.page, c.totalPages
	c.mu.Unlock()

	if page > total {
		return ErrNoMorePages
	}
	return c.Refresh(ctx, query, page, nil)
}

// SetFilters replaces the filter set and restarts the listing at page 1 of
// the latest settled search, whether or not that search loaded
func (c *MovieController) SetFilters(ctx context.Context, filters models.Filters) error {
	if err := filters.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.filters = filters.Clone()
	query := c.searchTerm
	c.mu.Unlock()

	c.logger.WithField("active", filters.ActiveCount()).Info("Filters changed")

	return c.Refresh(ctx, query, 1, &filters)
}

// SetGenre changes only the genre filter; nil removes it
func (c *MovieController) SetGenre(ctx context.Context, genre *int) error {
	f := c.Filters()
	f.Genre = genre
	return c.SetFilters(ctx, f)
}

// SetYear changes only the release year filter; nil removes it
func (c *MovieController) SetYear(ctx context.Context, year *int) error {
	f := c.Filters()
	f.Year = year
	return c.SetFilters(ctx, f)
}

// SetRating changes only the minimum rating filter; nil removes it
func (c *MovieController) SetRating(ctx context.Context, rating *float64) error {
	f := c.Filters()
	f.Rating = rating
	return c.SetFilters(ctx, f)
}

// ClearFilters removes every filter and restarts the listing
func (c *MovieController) ClearFilters(ctx context.Context) error {
	return c.SetFilters(ctx, models.Filters{})
}

// Filters returns a copy of the active filter set
func (c *MovieController) Filters() models.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.Clone()
}

// DismissError clears the shared error slot
func (c *MovieController) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = ""
}

// State returns a copy of the browsing state
func (c *MovieController) State() MovieState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return MovieState{
		Movies:     append([]models.Movie{}, c.movies...),
		Query:      c.query,
		Page:       c.page,
		TotalPages: c.totalPages,
		Filters:    c.filters.Clone(),
		Loading:    c.loading,
		Error:      c.lastError,
	}
}

// TopPicks returns the n best-rated movies of the current list
func (c *MovieController) TopPicks(n int) []models.Movie {
	if n <= 0 {
		n = DefaultTopPicks
	}

	c.mu.Lock()
	picks := append([]models.Movie{}, c.movies...)
	c.mu.Unlock()

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].VoteAverage > picks[j].VoteAverage
	})
	if len(picks) > n {
		picks = picks[:n]
	}
	return picks
}

// dedupeByID appends the movies of next whose id is not yet in list
func dedupeByID(list, next []models.Movie) []models.Movie {
	seen := make(map[int]struct{}, len(list)+len(next))
	out := make([]models.Movie, 0, len(list)+len(next))
	for _, m := range list {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	for _, m := range next {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
