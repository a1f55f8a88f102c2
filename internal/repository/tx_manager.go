package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// TxRepos exposes the repositories bound to one open transaction
type TxRepos interface {
	Products() ProductRepository
	Purchases() PurchaseRepository
}

// TransactionManager runs fn inside a single transaction. fn's error rolls
// everything back; a nil return commits.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

type txRepos struct {
	products  ProductRepository
	purchases PurchaseRepository
}

func (r *txRepos) Products() ProductRepository   { return r.products }
func (r *txRepos) Purchases() PurchaseRepository { return r.purchases }

type txManager struct {
	db *sql.DB
}

// NewTransactionManager creates a TransactionManager over db
func NewTransactionManager(db *sql.DB) TransactionManager {
	return &txManager{db: db}
}

func (tm *txManager) WithinTx(ctx context.Context, fn func(r TxRepos) error) (err error) {
	tx, err := tm.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	// repos are rebuilt on the tx handle
	repos := &txRepos{
		products:  NewProductRepository(tx),
		purchases: NewPurchaseRepository(tx),
	}

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
