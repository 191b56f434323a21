package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SifatU360/SwiftCart/internal/cart"
	"github.com/SifatU360/SwiftCart/internal/domain"
)

type CartHandler struct {
	store   *cart.Store
	timeout time.Duration
}

func NewCartHandler(store *cart.Store, timeout time.Duration) *CartHandler {
	return &CartHandler{
		store:   store,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type ChangeQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

// CartResponseDTO is what the presentation layer re-renders after every
// mutation: the ordered lines, the badge count, and the display total.
type CartResponseDTO struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice string            `json:"total_price"`
}

type AddItemResponseDTO struct {
	Added bool `json:"added"`
	CartResponseDTO
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem adds one unit of a product. An id outside the resident catalog
// snapshot leaves the cart untouched and reports added=false, so the UI can
// disable the affordance instead of surfacing an error.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	added, err := h.store.Add(ctx, req.ProductID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to persist cart")
		return
	}

	respondJSON(w, http.StatusOK, AddItemResponseDTO{
		Added:           added,
		CartResponseDTO: h.cartResponse(),
	})
}

func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req ChangeQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.store.ChangeQuantity(ctx, productID, req.Delta); err != nil {
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to persist cart")
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := h.store.Remove(ctx, productID); err != nil {
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to persist cart")
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Clear(ctx); err != nil {
		respondError(w, http.StatusInternalServerError, "storage_error", "failed to persist cart")
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	lines := h.store.Lines()
	sum := cart.Summarize(lines)
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponseDTO{
		Items:      lines,
		TotalItems: sum.ItemCount,
		TotalPrice: sum.Total.StringFixed(2),
	}
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return id, true
}
