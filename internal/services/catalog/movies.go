package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/amaumene/cinedeck/internal/models"
	"github.com/sirupsen/logrus"
)

// Provider parameter names for filter fields
const (
	paramGenre  = "with_genres"
	paramYear   = "primary_release_year"
	paramRating = "vote_average.gte"
)

// trailerSite is the video platform whose clips are playable inline
const trailerSite = "YouTube"

// Page is one page of a movie listing
type Page struct {
	Movies     []models.Movie
	Page       int
	TotalPages int
}

type listingResponse struct {
	Page         int            `json:"page"`
	Results      []models.Movie `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type genresResponse struct {
	Genres []models.Genre `json:"genres"`
}

type creditsResponse struct {
	ID   int                 `json:"id"`
	Cast []models.CastMember `json:"cast"`
}

type videosResponse struct {
	ID      int            `json:"id"`
	Results []models.Video `json:"results"`
}

// DiscoverOrSearch lists one page of movies.
// A non-empty query uses the search endpoint, otherwise the discover endpoint.
// Filter fields that are unset are left out of the request.
func (c *Client) DiscoverOrSearch(ctx context.Context, query string, page int, filters models.Filters) (*Page, error) {
	endpoint, path := "discover", "/discover/movie"
	if query != "" {
		endpoint, path = "search", "/search/movie"
	}

	c.logger.WithFields(logrus.Fields{
		"query":   query,
		"page":    page,
		"filters": filters.ActiveCount(),
	}).Debug("Listing movies")

	var resp listingResponse
	if err := c.doRequest(ctx, endpoint, path, listingParams(query, page, filters), &resp); err != nil {
		return nil, err
	}

	movies := resp.Results
	if movies == nil {
		movies = []models.Movie{}
	}

	c.logger.WithFields(logrus.Fields{
		"count":       len(movies),
		"total_pages": resp.TotalPages,
	}).Debug("Listing completed")

	return &Page{
		Movies:     movies,
		Page:       page,
		TotalPages: resp.TotalPages,
	}, nil
}

// listingParams maps a query, page and filter set to provider parameters
func listingParams(query string, page int, filters models.Filters) url.Values {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	if filters.Genre != nil {
		params.Set(paramGenre, strconv.Itoa(*filters.Genre))
	}
	if filters.Year != nil {
		params.Set(paramYear, fmt.Sprintf("%04d", *filters.Year))
	}
	if filters.Rating != nil {
		params.Set(paramRating, strconv.FormatFloat(*filters.Rating, 'f', -1, 64))
	}

	return params
}

// Genres retrieves the genre id to name mapping
func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var resp genresResponse
	if err := c.doRequest(ctx, "genres", "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// Movie retrieves the detail record of a single movie
func (c *Client) Movie(ctx context.Context, id int) (*models.MovieDetails, error) {
	var details models.MovieDetails
	if err := c.doRequest(ctx, "movie", fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// Credits retrieves the cast of a movie in billing order
func (c *Client) Credits(ctx context.Context, id int) ([]models.CastMember, error) {
	var resp creditsResponse
	if err := c.doRequest(ctx, "credits", fmt.Sprintf("/movie/%d/credits", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cast, nil
}

// Videos retrieves every clip attached to a movie
func (c *Client) Videos(ctx context.Context, id int) ([]models.Video, error) {
	var resp videosResponse
	if err := c.doRequest(ctx, "videos", fmt.Sprintf("/movie/%d/videos", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Trailer returns the first playable trailer of a movie, or nil when there is none
func (c *Client) Trailer(ctx context.Context, id int) (*models.Video, error) {
	videos, err := c.Videos(ctx, id)
	if err != nil {
		return nil, err
	}
	return PickTrailer(videos), nil
}

// PickTrailer prefers the first clip of type "Trailer" hosted on the trailer
// platform and falls back to any clip hosted there.
func PickTrailer(videos []models.Video) *models.Video {
	var fallback *models.Video
	for i := range videos {
		if videos[i].Site != trailerSite {
			continue
		}
		if videos[i].Type == "Trailer" {
			v := videos[i]
			return &v
		}
		if fallback == nil {
			v := videos[i]
			fallback = &v
		}
	}
	return fallback
}

// Recommendations retrieves at most limit movies recommended for a movie.
// A non-positive limit returns the full first page.
func (c *Client) Recommendations(ctx context.Context, id int, limit int) ([]models.Movie, error) {
	var resp listingResponse
	if err := c.doRequest(ctx, "recommendations", fmt.Sprintf("/movie/%d/recommendations", id), nil, &resp); err != nil {
		return nil, err
	}
	if limit > 0 && len(resp.Results) > limit {
		return resp.Results[:limit], nil
	}
	return resp.Results, nil
}
