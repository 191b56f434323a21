package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SifatU360/SwiftCart/internal/catalog"
	"github.com/SifatU360/SwiftCart/internal/domain"
)

// trendingCount is how many top-rated products the landing page shows.
const trendingCount = 3

// CatalogFetcher is the slice of the catalog client the handlers need.
// Consumers define this interface, not the HTTP implementation.
type CatalogFetcher interface {
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, category string) ([]domain.Product, error)
	Product(ctx context.Context, id int64) (*domain.Product, error)
}

type CatalogHandler struct {
	fetcher CatalogFetcher
	cache   *catalog.Cache
	timeout time.Duration
}

func NewCatalogHandler(fetcher CatalogFetcher, cache *catalog.Cache, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		fetcher: fetcher,
		cache:   cache,
		timeout: timeout,
	}
}

type ProductListResponseDTO struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
	Category string           `json:"category"`
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.fetcher.Categories(ctx)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	// The filter row always leads with the unfiltered option.
	respondJSON(w, http.StatusOK, append([]string{catalog.AllCategories}, categories...))
}

// ListProducts fetches the list for the requested category and makes it the
// resident snapshot. Only products in that snapshot can be added to the cart.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.AllCategories
	}

	products, err := h.fetcher.Products(ctx, category)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	h.cache.Replace(products)

	respondJSON(w, http.StatusOK, ProductListResponseDTO{
		Products: products,
		Count:    len(products),
		Category: category,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	product, err := h.fetcher.Product(ctx, id)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cache.Trending(trendingCount))
}

func handleCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrCatalogUnavailable) {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to load products, please try again later")
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
}
