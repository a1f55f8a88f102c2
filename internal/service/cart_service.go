package service

import (
	"context"
	"errors"
	"fmt"

	"supermarket/internal/domain"
	"supermarket/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Receipt describes a committed checkout
type Receipt struct {
	CheckoutID uuid.UUID
	Lines      []domain.CartLine
	Total      decimal.Decimal
}

// CartService connects a session cart to the catalog store
type CartService interface {
	AddToCart(ctx context.Context, cart *domain.Cart, productID int64, quantity int) (*domain.Product, error)
	Checkout(ctx context.Context, cart *domain.Cart) (*Receipt, error)
}

type cartService struct {
	products repository.ProductRepository
	tx       repository.TransactionManager
	logger   *zap.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(products repository.ProductRepository, tx repository.TransactionManager, logger *zap.Logger) CartService {
	return &cartService{products: products, tx: tx, logger: logger}
}

// AddToCart checks the product exists and has the stock, then adds it to cart
func (s *cartService) AddToCart(ctx context.Context, cart *domain.Cart, productID int64, quantity int) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if err := cart.Add(product, quantity); err != nil {
		return nil, err
	}

	s.logger.Debug("Added to cart",
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
	)
	return product, nil
}

// Checkout applies every cart line in one transaction: each line decrements
// stock (only if enough remains) and appends a purchase. The cart is cleared
// only after commit; on any failure nothing persists and the cart is untouched.
func (s *cartService) Checkout(ctx context.Context, cart *domain.Cart) (*Receipt, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	view := cart.View()
	checkoutID := uuid.New()
	log := s.logger.With(zap.String("checkout_id", checkoutID.String()))

	err := s.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		for _, line := range view.Lines {
			ok, err := r.Products().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return s.explainShortfall(ctx, r, line)
			}

			purchase := &domain.Purchase{ProductID: line.ProductID, Quantity: line.Quantity}
			if err := r.Purchases().Create(ctx, purchase); err != nil {
				return err
			}

			log.Debug("Checkout line applied",
				zap.Int64("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Int64("purchase_id", purchase.ID),
			)
		}
		return nil
	})
	if err != nil {
		log.Warn("Checkout rolled back", zap.Int("lines", len(view.Lines)), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	cart.Clear()

	log.Info("Checkout committed",
		zap.Int("lines", len(view.Lines)),
		zap.String("total", view.Total.StringFixed(2)),
	)

	return &Receipt{CheckoutID: checkoutID, Lines: view.Lines, Total: view.Total}, nil
}

// explainShortfall tells a vanished product apart from one whose stock dropped
// since it was added to the cart
func (s *cartService) explainShortfall(ctx context.Context, r repository.TxRepos, line domain.CartLine) error {
	product, err := r.Products().FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return fmt.Errorf("%q: %w", line.Name, repository.ErrProductNotFound)
		}
		return err
	}
	return fmt.Errorf("%q: %w: only %d left", line.Name, domain.ErrInsufficientStock, product.Quantity)
}
