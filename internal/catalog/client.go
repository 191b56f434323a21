package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/SifatU360/SwiftCart/internal/domain"
)

// DefaultBaseURL is the public catalog API the storefront was built against.
const DefaultBaseURL = "https://fakestoreapi.com"

// AllCategories selects the unfiltered product list.
const AllCategories = "all"

// ErrCatalogUnavailable covers network failures, non-2xx responses and
// unparseable bodies. Callers render an empty state and do not retry.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Client fetches categories and products from the remote catalog API. All
// calls are read-only GETs behind a circuit breaker.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	sfg     singleflight.Group
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	st := gobreaker.Settings{
		Name:     "CatalogBreaker",
		Interval: 10 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("%s state changed from %s to %s", name, from, to)
		},
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cb:      gobreaker.NewCircuitBreaker(st),
	}
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, "/products/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products fetches the product list for one category filter. Identical
// concurrent fetches collapse into a single request. Fetches for different
// categories stay independent and may resolve in any order; whoever consumes
// the results decides what the resident snapshot becomes.
func (c *Client) Products(ctx context.Context, category string) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("products:"+category, func() (interface{}, error) {
		path := "/products"
		if category != AllCategories && category != "" {
			path = "/products/category/" + url.PathEscape(category)
		}

		var out []domain.Product
		if err := c.getJSON(ctx, path, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var out domain.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return nil, nil
	})
	if err != nil {
		log.WithError(err).Warn("catalog fetch failed")
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return nil
}
