package service

import (
	"context"
	"fmt"
	"time"

	"supermarket/internal/domain"
	"supermarket/internal/repository"
)

const (
	DefaultTrendingWindow = 7 * 24 * time.Hour
	DefaultTrendingLimit  = 5
)

// ReportService produces read-only sales reports
type ReportService interface {
	Trending(ctx context.Context) ([]domain.TrendingItem, error)
	Window() time.Duration
}

type reportService struct {
	purchases repository.PurchaseRepository
	window    time.Duration
	limit     int
	now       func() time.Time
}

// NewReportService creates a ReportService; non-positive window or limit fall back to the defaults
func NewReportService(purchases repository.PurchaseRepository, window time.Duration, limit int) ReportService {
	if window <= 0 {
		window = DefaultTrendingWindow
	}
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	return &reportService{purchases: purchases, window: window, limit: limit, now: time.Now}
}

// Trending returns the best sellers of the trailing window. An empty slice
// means nothing sold in the window.
func (s *reportService) Trending(ctx context.Context) ([]domain.TrendingItem, error) {
	since := s.now().Add(-s.window)

	items, err := s.purchases.Trending(ctx, since, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build trending report: %w", err)
	}
	if items == nil {
		items = []domain.TrendingItem{}
	}
	return items, nil
}

func (s *reportService) Window() time.Duration {
	return s.window
}
