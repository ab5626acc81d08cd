package models

import (
	"errors"
	"fmt"
)

// ErrInvalidFilter is returned when a filter field holds an out-of-range value
var ErrInvalidFilter = errors.New("invalid filter")

// Filters narrows catalog listings. A nil field means "no constraint".
type Filters struct {
	Genre  *int     `json:"genre,omitempty"`
	Year   *int     `json:"year,omitempty"`
	Rating *float64 `json:"rating,omitempty"` // minimum average vote
}

// Validate checks every present field
func (f Filters) Validate() error {
	if f.Genre != nil && *f.Genre <= 0 {
		return fmt.Errorf("%w: genre id %d", ErrInvalidFilter, *f.Genre)
	}
	if f.Year != nil && (*f.Year < 1000 || *f.Year > 9999) {
		return fmt.Errorf("%w: year %d is not a 4-digit year", ErrInvalidFilter, *f.Year)
	}
	if f.Rating != nil && (*f.Rating < 0 || *f.Rating > 10) {
		return fmt.Errorf("%w: rating %.1f is outside 0-10", ErrInvalidFilter, *f.Rating)
	}
	return nil
}

// ActiveCount returns the number of set fields
func (f Filters) ActiveCount() int {
	count := 0
	if f.Genre != nil {
		count++
	}
	if f.Year != nil {
		count++
	}
	if f.Rating != nil {
		count++
	}
	return count
}

// Clone returns a deep copy so callers never share field pointers
func (f Filters) Clone() Filters {
	var out Filters
	if f.Genre != nil {
		v := *f.Genre
		out.Genre = &v
	}
	if f.Year != nil {
		v := *f.Year
		out.Year = &v
	}
	if f.Rating != nil {
		v := *f.Rating
		out.Rating = &v
	}
	return out
}
