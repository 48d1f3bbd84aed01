package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/cart"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

type CartHandler struct {
	cart    *cart.Store
	catalog Catalog
	timeout time.Duration
}

func NewCartHandler(store *cart.Store, c Catalog, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    store,
		catalog: c,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type CartResponseDTO struct {
	Items       domain.Cart `json:"items"`
	ItemCount   int         `json:"item_count"`
	Subtotal    float64     `json:"subtotal"`
	ShippingFee float64     `json:"shipping_fee"`
	Total       float64     `json:"total"`
}

type AddItemResponseDTO struct {
	Outcome cart.Outcome    `json:"outcome"`
	Title   string          `json:"title"`
	Message string          `json:"message"`
	Cart    CartResponseDTO `json:"cart"`
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	summary := h.cart.Summary()
	lines := summary.Lines
	if lines == nil {
		lines = domain.Cart{}
	}
	return CartResponseDTO{
		Items:       lines,
		ItemCount:   summary.Totals.ItemCount,
		Subtotal:    summary.Totals.Subtotal.Round(2).InexactFloat64(),
		ShippingFee: summary.Totals.ShippingFee.Round(2).InexactFloat64(),
		Total:       summary.Totals.Total.Round(2).InexactFloat64(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

// GET /api/v1/cart/count
func (h *CartHandler) GetItemCount(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]int{"item_count": h.cart.ItemCount()})
}

// POST /api/v1/cart/items
// The product is resolved from the catalog so prices never come from the client.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
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

	resp := AddItemResponseDTO{Outcome: h.cart.AddToCart(product)}
	status := http.StatusCreated
	if resp.Outcome == cart.OutcomeIncremented {
		status = http.StatusOK
		resp.Title = "Quantity Updated"
		resp.Message = fmt.Sprintf("%s quantity has been increased in your cart.", product.Title)
	} else {
		resp.Title = "Success!"
		resp.Message = fmt.Sprintf("%s has been added to your cart.", product.Title)
	}
	resp.Cart = h.cartResponse()

	respondJSON(w, r, status, resp)
}

// POST /api/v1/cart/items/{product_id}/increment
func (h *CartHandler) IncrementQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	h.cart.IncrementQuantity(productID)
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

// POST /api/v1/cart/items/{product_id}/decrement
func (h *CartHandler) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	h.cart.DecrementQuantity(productID)
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}
	h.cart.RemoveFromCart(productID)
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.EmptyCart()
	respondJSON(w, r, http.StatusOK, h.cartResponse())
}
