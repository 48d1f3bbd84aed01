package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

type Listing struct {
	Products   []domain.Product `json:"products"`
	Categories []string         `json:"categories"`
}

type Service struct {
	source  Source
	log     logrus.FieldLogger
	timeout time.Duration
	sfg     singleflight.Group // concurrent screens share one fetch
}

func NewService(source Source, log logrus.FieldLogger, timeout time.Duration) *Service {
	return &Service{
		source:  source,
		log:     log.WithField("component", "catalog"),
		timeout: timeout,
	}
}

// Products fetches the whole catalog. A failed fetch is logged and yields an empty list.
func (s *Service) Products(ctx context.Context) []domain.Product {
	products, err := s.fetch(ctx)
	if err != nil {
		logger.FromContext(ctx, s.log).WithError(err).Error("failed to fetch products")
		return []domain.Product{}
	}
	return products
}

func (s *Service) fetch(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		page, err := s.source.ListProducts(fetchCtx)
		if err != nil {
			return nil, err
		}
		return page.Products, nil
	})
	if err != nil {
		return nil, err
	}

	products := v.([]domain.Product)
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, nil
}

// Browse returns the filtered listing and the category chips for the landing page.
func (s *Service) Browse(ctx context.Context, query, category string) Listing {
	if category == "" {
		category = AllCategories
	}
	all := s.Products(ctx)
	return Listing{
		Products:   Filter(all, query, category),
		Categories: Categories(all),
	}
}

// Product looks up one product. A failed fetch is reported as ErrCatalogUnavailable,
// never as ErrProductNotFound.
func (s *Service) Product(ctx context.Context, id int64) (domain.Product, error) {
	products, err := s.fetch(ctx)
	if err != nil {
		logger.FromContext(ctx, s.log).WithError(err).Error("failed to fetch products")
		return domain.Product{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Related lists up to MaxRelated products sharing the category of product id.
// A failed fetch degrades to an empty list.
func (s *Service) Related(ctx context.Context, id int64) ([]domain.Product, error) {
	products, err := s.fetch(ctx)
	if err != nil {
		logger.FromContext(ctx, s.log).WithError(err).Error("failed to fetch related products")
		return []domain.Product{}, nil
	}
	for _, p := range products {
		if p.ID == id {
			return Related(products, p, MaxRelated), nil
		}
	}
	return nil, ErrProductNotFound
}
