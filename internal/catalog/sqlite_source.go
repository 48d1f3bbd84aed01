package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/domain"
)

// SQLiteSource reads the seeded local catalog from the products table.
type SQLiteSource struct {
	db *sql.DB
}

func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

func (s *SQLiteSource) ListProducts(ctx context.Context) (*domain.ProductPage, error) {
	query := `
		SELECT id, title, description, price, category, images, thumbnail, specifications, reviews
		FROM products
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p                      domain.Product
			images, specs, reviews string
		)
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Category,
			&images, &p.Thumbnail, &specs, &reviews)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if err := unmarshalColumns(&p, images, specs, reviews); err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &domain.ProductPage{
		Products: products,
		Total:    len(products),
		Limit:    len(products),
	}, nil
}

func unmarshalColumns(p *domain.Product, images, specs, reviews string) error {
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return fmt.Errorf("images: %w", err)
	}
	if err := json.Unmarshal([]byte(specs), &p.Specifications); err != nil {
		return fmt.Errorf("specifications: %w", err)
	}
	if err := json.Unmarshal([]byte(reviews), &p.Reviews); err != nil {
		return fmt.Errorf("reviews: %w", err)
	}
	return nil
}
