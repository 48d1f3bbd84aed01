package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

type Handlers struct {
	Products *ProductHandler
	Cart     *CartHandler
	Wishlist *WishlistHandler
	Checkout *CheckoutHandler
}

// NewRouter wires the storefront API. The returned handler is traced with otelhttp.
func NewRouter(cfg RouterConfig, h Handlers, log logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestSize(cfg.MaxRequestBodySize))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Products.ListProducts)
			r.Get("/{product_id}", h.Products.GetProduct)
			r.Get("/{product_id}/related", h.Products.GetRelated)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Get("/count", h.Cart.GetItemCount)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Post("/items/{product_id}/increment", h.Cart.IncrementQuantity)
			r.Post("/items/{product_id}/decrement", h.Cart.DecrementQuantity)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", h.Wishlist.GetWishlist)
			r.Post("/toggle", h.Wishlist.Toggle)
			r.Delete("/{product_id}", h.Wishlist.RemoveItem)
		})
		r.Post("/checkout/address", h.Checkout.SubmitAddress)
	})

	return otelhttp.NewHandler(r, "storefront")
}
