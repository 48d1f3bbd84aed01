package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/wishlist"
)

type WishlistHandler struct {
	wishlist *wishlist.Store
	catalog  Catalog
	timeout  time.Duration
}

func NewWishlistHandler(store *wishlist.Store, c Catalog, timeout time.Duration) *WishlistHandler {
	return &WishlistHandler{
		wishlist: store,
		catalog:  c,
		timeout:  timeout,
	}
}

type ToggleRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type ToggleResponseDTO struct {
	Wishlisted bool            `json:"wishlisted"`
	Message    string          `json:"message"`
	Items      domain.Wishlist `json:"items"`
}

func (h *WishlistHandler) items() domain.Wishlist {
	items := h.wishlist.Items()
	if items == nil {
		return domain.Wishlist{}
	}
	return items
}

// GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]domain.Wishlist{"items": h.items()})
}

// POST /api/v1/wishlist/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}

	resp := ToggleResponseDTO{Wishlisted: h.wishlist.Toggle(product)}
	if resp.Wishlisted {
		resp.Message = fmt.Sprintf("%s added to wishlist.", product.Title)
	} else {
		resp.Message = fmt.Sprintf("%s removed from wishlist.", product.Title)
	}
	resp.Items = h.items()

	respondJSON(w, r, http.StatusOK, resp)
}

// DELETE /api/v1/wishlist/{product_id}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	h.wishlist.Remove(productID)
	respondJSON(w, r, http.StatusOK, map[string]domain.Wishlist{"items": h.items()})
}
