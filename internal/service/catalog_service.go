package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supermarket/internal/domain"
	"supermarket/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxPrice is the largest value NUMERIC(10, 2) holds
var maxPrice = decimal.RequireFromString("99999999.99")

// ProductInput carries the fields of a new product
type ProductInput struct {
	Name     string          `validate:"required,max=255"`
	Category string          `validate:"required,max=255"`
	Price    decimal.Decimal `validate:"-"`
	Quantity int             `validate:"gte=0,lte=2147483647"`
}

// ProductPatch carries optional replacements; nil keeps the current value
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Quantity *int
}

// CatalogService covers admin product management and the inventory queries
type CatalogService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CountCategory(ctx context.Context, category string) (int, error)
	DeleteCategory(ctx context.Context, category string) (int, error)

	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error)
}

type catalogService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(products repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{products: products, logger: logger}
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if price.GreaterThan(maxPrice) {
		return fmt.Errorf("%w: price must be at most %s", ErrInvalidInput, maxPrice.StringFixed(2))
	}
	return nil
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Price = in.Price.Round(2)
}

// CreateProduct validates and stores a new product
func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:     in.Name,
		Category: in.Category,
		Price:    in.Price,
		Quantity: in.Quantity,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("category", product.Category),
		zap.Int("quantity", product.Quantity),
	)
	return product, nil
}

// UpdateProduct applies a partial update to an existing product
func (s *catalogService) UpdateProduct(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in := ProductInput{
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		in.Name = *patch.Name
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) != "" {
		in.Category = *patch.Category
	}
	if patch.Price != nil {
		in.Price = *patch.Price
	}
	if patch.Quantity != nil {
		in.Quantity = *patch.Quantity
	}

	in.normalize()
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Category = in.Category
	product.Price = in.Price
	product.Quantity = in.Quantity

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("Product updated", zap.Int64("product_id", id))
	return product, nil
}

// DeleteProduct removes a single product
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// GetProduct returns one product
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// CountCategory counts products in a category before a bulk delete
func (s *catalogService) CountCategory(ctx context.Context, category string) (int, error) {
	return s.products.CountByCategory(ctx, strings.TrimSpace(category))
}

// DeleteCategory removes every product of a category
func (s *catalogService) DeleteCategory(ctx context.Context, category string) (int, error) {
	category = strings.TrimSpace(category)
	n, err := s.products.DeleteByCategory(ctx, category)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Category deleted", zap.String("category", category), zap.Int("products", n))
	return n, nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx, repository.ProductFilter{})
}

func (s *catalogService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.List(ctx, repository.ProductFilter{Category: &category})
}

// ListByPriceRange lists products with min <= price <= max. A negative bound or
// an inverted range is rejected before any query runs.
func (s *catalogService) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error) {
	if min.IsNegative() || max.IsNegative() {
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidInput)
	}
	if min.GreaterThan(max) {
		return nil, fmt.Errorf("%w: minimum price exceeds maximum price", ErrInvalidInput)
	}
	return s.products.List(ctx, repository.ProductFilter{PriceRange: &domain.PriceRange{Min: min, Max: max}})
}
