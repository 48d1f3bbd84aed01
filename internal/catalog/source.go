package catalog

import (
	"context"
	"errors"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Source fetches the product catalog.
type Source interface {
	ListProducts(ctx context.Context) (*domain.ProductPage, error)
}
