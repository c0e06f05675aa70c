package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
	"golang.org/x/time/rate"
)

// Catalog proxies movie search and detail lookups to the OMDb API. The
// upstream key never reaches clients; all catalog traffic goes through here,
// throttled to the configured request rate.
type Catalog struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewCatalog creates a [Catalog] from configuration.
func NewCatalog(cfg shared.CatalogConfig, logger *log.Logger) *Catalog {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://www.omdbapi.com/"
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 5.0
	}

	return &Catalog{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
		logger:  logger,
	}
}

type searchResponse struct {
	Search   []models.SearchResult `json:"Search"`
	Response string                `json:"Response"`
	Error    string                `json:"Error"`
}

// Search queries the catalog by title. A "not found" answer from upstream is
// an empty result, not an error.
func (c *Catalog) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("s", query)
	params.Set("type", "movie")

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Response != "True" {
		if strings.Contains(resp.Error, "not found") {
			return []models.SearchResult{}, nil
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrTransient, resp.Error)
	}

	return resp.Search, nil
}

type detailsResponse struct {
	models.MovieDetails
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// Details fetches the full metadata record for one movie id.
func (c *Catalog) Details(ctx context.Context, movieID string) (*models.MovieDetails, error) {
	params := url.Values{}
	params.Set("i", movieID)
	params.Set("plot", "full")

	var resp detailsResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	if resp.Response != "True" {
		return nil, fmt.Errorf("%w: movie", shared.ErrNotFound)
	}

	return &resp.MovieDetails, nil
}

func (c *Catalog) get(ctx context.Context, params url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: catalog unreachable", shared.ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("catalog request failed", "status", resp.StatusCode)
		return fmt.Errorf("%w: catalog returned %d", shared.ErrTransient, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed catalog response", shared.ErrTransient)
	}

	return nil
}
