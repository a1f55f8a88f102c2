package repository

import (
	"context"
	"fmt"
	"time"

	"supermarket/internal/domain"
)

// PurchaseRepository defines the interface for the append-only purchase log
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	Trending(ctx context.Context, since time.Time, limit int) ([]domain.TrendingItem, error)
}

type purchaseRepository struct {
	db DBTX
}

// NewPurchaseRepository creates a new instance of PurchaseRepository
func NewPurchaseRepository(db DBTX) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create appends a purchase; the database stamps purchased_at
func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	query := `
		INSERT INTO purchases (product_id, quantity)
		VALUES ($1, $2)
		RETURNING id, purchased_at
	`

	err := r.db.QueryRowContext(ctx, query, purchase.ProductID, purchase.Quantity).
		Scan(&purchase.ID, &purchase.PurchasedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("failed to record purchase: %w", ErrProductNotFound)
		}
		return fmt.Errorf("failed to record purchase: %w", err)
	}

	return nil
}

// Trending sums purchased quantities per product since the given instant,
// best sellers first
func (r *purchaseRepository) Trending(ctx context.Context, since time.Time, limit int) ([]domain.TrendingItem, error) {
	query := `
		SELECT p.id, p.name, p.category, SUM(pc.quantity) AS total_sold
		FROM products p
		JOIN purchases pc ON p.id = pc.product_id
		WHERE pc.purchased_at >= $1
		GROUP BY p.id, p.name, p.category
		ORDER BY total_sold DESC, p.id ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending products: %w", err)
	}
	defer rows.Close()

	items := []domain.TrendingItem{}
	for rows.Next() {
		var item domain.TrendingItem
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Category, &item.TotalSold); err != nil {
			return nil, fmt.Errorf("failed to scan trending product: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trending products: %w", err)
	}

	return items, nil
}
