package domain

import "time"

// Purchase is one sold cart line in the append-only purchase log
type Purchase struct {
	ID          int64     `json:"id" db:"id"`
	ProductID   int64     `json:"product_id" db:"product_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	PurchasedAt time.Time `json:"purchased_at" db:"purchased_at"`
}

// TrendingItem aggregates purchases of one product over the report window
type TrendingItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	TotalSold int64  `json:"total_sold"`
}
