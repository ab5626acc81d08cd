package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/amaumene/cinedeck/internal/services/catalog"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type listCall struct {
	Query   string
	Page    int
	Filters models.Filters
}

// fakeCatalog records listing calls and answers them with listFn
type fakeCatalog struct {
	mu     sync.Mutex
	calls  []listCall
	listFn func(ctx context.Context, query string, page int, filters models.Filters) (*catalog.Page, error)
}

func (f *fakeCatalog) DiscoverOrSearch(ctx context.Context, query string, page int, filters models.Filters) (*catalog.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, listCall{Query: query, Page: page, Filters: filters})
	fn := f.listFn
	f.mu.Unlock()
	return fn(ctx, query, page, filters)
}

func (f *fakeCatalog) lastCall() listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// movieRange builds movies with ids from..to inclusive
func movieRange(from, to int) []models.Movie {
	movies := make([]models.Movie, 0, to-from+1)
	for id := from; id <= to; id++ {
		movies = append(movies, models.Movie{ID: id, Title: fmt.Sprintf("Movie %d", id), VoteAverage: float64(id % 10)})
	}
	return movies
}

func staticPages(totalPages int, pages map[int][]models.Movie) func(context.Context, string, int, models.Filters) (*catalog.Page, error) {
	return func(_ context.Context, _ string, page int, _ models.Filters) (*catalog.Page, error) {
		return &catalog.Page{Movies: pages[page], Page: page, TotalPages: totalPages}, nil
	}
}

var errBrokenStore = errors.New("disk full")

// brokenStore fails every write
type brokenStore struct {
	*models.MemoryStore
}

func (s brokenStore) Set(key string, value []byte) error { return errBrokenStore }

func (s brokenStore) Remove(key string) error { return errBrokenStore }

func intPtr(v int) *int { return &v }
