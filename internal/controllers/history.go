package controllers

import (
	"fmt"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/amaumene/cinedeck/internal/utils"
)

// MaxSearchHistory bounds the number of remembered search terms
const MaxSearchHistory = 5

// AddSearchTerm moves term to the front of the history, dropping any earlier
// occurrence and the oldest entries past MaxSearchHistory. Empty terms are ignored.
func (c *MovieController) AddSearchTerm(term string) error {
	term = normalizeTerm(term)
	if term == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := pushTerm(c.history, term)
	if err := models.SaveJSON(c.store, models.KeySearchHistory, next); err != nil {
		return fmt.Errorf("failed to persist search history: %w", err)
	}
	c.history = next
	return nil
}

// SearchHistory returns the remembered terms, most recent first
func (c *MovieController) SearchHistory() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.history...)
}

// ClearHistory forgets every search term
func (c *MovieController) ClearHistory() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := models.SaveJSON(c.store, models.KeySearchHistory, []string{}); err != nil {
		return fmt.Errorf("failed to persist search history: %w", err)
	}
	c.history = []string{}
	c.logger.Info("Search history cleared")
	return nil
}

// HistorySuggestions returns history terms resembling query, closest first
func (c *MovieController) HistorySuggestions(query string) []string {
	return utils.RankBySimilarity(query, c.SearchHistory())
}

// pushTerm returns a new history with term in front
func pushTerm(history []string, term string) []string {
	next := make([]string, 0, MaxSearchHistory)
	next = append(next, term)
	for _, t := range history {
		if len(next) == MaxSearchHistory {
			break
		}
		if t != term {
			next = append(next, t)
		}
	}
	return next
}

// dedupeTerms drops empty and repeated terms, keeping the first occurrence,
// and caps the result at MaxSearchHistory
func dedupeTerms(terms []string) []string {
	out := make([]string, 0, MaxSearchHistory)
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		t = normalizeTerm(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == MaxSearchHistory {
			break
		}
	}
	return out
}

func normalizeTerm(term string) string {
	return utils.NormalizeTerm(term)
}
