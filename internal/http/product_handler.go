package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/catalog"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

type Catalog interface {
	Browse(ctx context.Context, query, category string) catalog.Listing
	Product(ctx context.Context, id int64) (domain.Product, error)
	Related(ctx context.Context, id int64) ([]domain.Product, error)
}

type CartReader interface {
	Contains(productID int64) bool
}

type WishlistReader interface {
	IsWishlisted(productID int64) bool
}

type ProductHandler struct {
	catalog  Catalog
	cart     CartReader
	wishlist WishlistReader
	timeout  time.Duration
}

func NewProductHandler(c Catalog, cart CartReader, wishlist WishlistReader, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog:  c,
		cart:     cart,
		wishlist: wishlist,
		timeout:  timeout,
	}
}

type ProductDetailDTO struct {
	domain.Product
	InCart     bool `json:"in_cart"`
	Wishlisted bool `json:"wishlisted"`
}

// GET /api/v1/products?q=&category=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	listing := h.catalog.Browse(ctx, q.Get("q"), q.Get("category"))
	respondJSON(w, r, http.StatusOK, listing)
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.Product(ctx, productID)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, ProductDetailDTO{
		Product:    product,
		InCart:     h.cart.Contains(productID),
		Wishlisted: h.wishlist.IsWishlisted(productID),
	})
}

// GET /api/v1/products/{product_id}/related
func (h *ProductHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	related, err := h.catalog.Related(ctx, productID)
	if err != nil {
		handleCatalogError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string][]domain.Product{"products": related})
}

func handleCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, r, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "catalog_unavailable", "product catalog is unavailable, try again later")
	default:
		respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
