package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amaumene/cinedeck/internal/config"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// ErrFetchFailed is the single failure condition of every catalog call.
// Transport errors, timeouts, non-2xx responses and malformed JSON all wrap it.
var ErrFetchFailed = errors.New("fetch failed")

const (
	userAgent  = "cinedeck/1.0"
	tracerName = "github.com/amaumene/cinedeck/internal/services/catalog"

	// Cap on error bodies copied into error messages
	maxErrorBody = 512
)

// Client handles communication with the movie catalog API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
	tracer     trace.Tracer
	logger     *logrus.Logger
}

// NewClient creates a new catalog client. metrics may be nil.
func NewClient(cfg *config.Config, metrics *Metrics, logger *logrus.Logger) (*Client, error) {
	if cfg.CatalogBaseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}
	if _, err := url.Parse(cfg.CatalogBaseURL); err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if cfg.CatalogAPIKey == "" {
		return nil, fmt.Errorf("catalog API key is required")
	}

	timeout := cfg.CatalogTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	burst := int(cfg.CatalogRateLimit)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.CatalogBaseURL, "/"),
		apiKey:     cfg.CatalogAPIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.CatalogRateLimit), burst),
		metrics:    metrics,
		tracer:     otel.Tracer(tracerName),
		logger:     logger,
	}, nil
}

// doRequest performs a GET against the catalog and decodes the JSON body into result.
// endpoint is a low-cardinality name used for metrics and tracing.
func (c *Client) doRequest(ctx context.Context, endpoint, path string, params url.Values, result interface{}) (err error) {
	ctx, span := c.tracer.Start(ctx, "catalog."+endpoint, trace.WithAttributes(
		attribute.String("catalog.path", path),
	))
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		c.metrics.observe(endpoint, err, time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", ErrFetchFailed, err)
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"path":     path,
		"params":   query.Encode(),
	}).Debug("Making catalog request")

	query.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error embeds the full URL, api_key included
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: request failed: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.WithFields(logrus.Fields{
			"endpoint":    endpoint,
			"status_code": resp.StatusCode,
			"body":        string(body),
		}).Error("Catalog API returned non-OK status")
		return fmt.Errorf("%w: catalog returned status %d: %s", ErrFetchFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrFetchFailed, err)
		}
	}

	return nil
}
