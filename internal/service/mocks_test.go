package service

import (
	"context"
	"sort"
	"time"

	"supermarket/internal/domain"
	"supermarket/internal/repository"
)

type mockUserRepository struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repository.ErrUsernameTaken
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// store is an in-memory catalog and purchase log shared by the mocks below.
// failOn lets tests inject a fault for a given operation and product id.
type store struct {
	products  map[int64]*domain.Product
	purchases []domain.Purchase
	nextID    int64
	failOn    func(op string, productID int64) error
	now       time.Time

	decrements int
	inserts    int
}

func newStore() *store {
	return &store{products: make(map[int64]*domain.Product), now: time.Now()}
}

func (s *store) add(p domain.Product) *domain.Product {
	s.nextID++
	p.ID = s.nextID
	s.products[p.ID] = &p
	return &p
}

func (s *store) fault(op string, productID int64) error {
	if s.failOn == nil {
		return nil
	}
	return s.failOn(op, productID)
}

func (s *store) snapshot() (map[int64]domain.Product, int) {
	saved := make(map[int64]domain.Product, len(s.products))
	for id, p := range s.products {
		saved[id] = *p
	}
	return saved, len(s.purchases)
}

func (s *store) restore(saved map[int64]domain.Product, purchases int) {
	s.products = make(map[int64]*domain.Product, len(saved))
	for id, p := range saved {
		p := p
		s.products[id] = &p
	}
	s.purchases = s.purchases[:purchases]
}

type mockProductRepository struct{ s *store }

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := m.s.fault("create", 0); err != nil {
		return err
	}
	created := m.s.add(*product)
	*product = *created
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.s.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	p := *product
	m.s.products[product.ID] = &p
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	for _, pc := range m.s.purchases {
		if pc.ProductID == id {
			return repository.ErrProductInUse
		}
	}
	delete(m.s.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := m.s.fault("find", id); err != nil {
		return nil, err
	}
	p, ok := m.s.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	out := []*domain.Product{}
	for _, p := range m.s.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.PriceRange != nil && !filter.PriceRange.Contains(p.Price) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProductRepository) CountByCategory(ctx context.Context, category string) (int, error) {
	n := 0
	for _, p := range m.s.products {
		if p.Category == category {
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepository) DeleteByCategory(ctx context.Context, category string) (int, error) {
	n := 0
	for id, p := range m.s.products {
		if p.Category == category {
			delete(m.s.products, id)
			n++
		}
	}
	return n, nil
}

func (m *mockProductRepository) DecreaseStockIfEnough(ctx context.Context, id int64, quantity int) (bool, error) {
	if err := m.s.fault("decrease", id); err != nil {
		return false, err
	}
	p, ok := m.s.products[id]
	if !ok || p.Quantity < quantity {
		return false, nil
	}
	p.Quantity -= quantity
	m.s.decrements++
	return true, nil
}

type mockPurchaseRepository struct{ s *store }

func (m *mockPurchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	if err := m.s.fault("purchase", purchase.ProductID); err != nil {
		return err
	}
	if _, ok := m.s.products[purchase.ProductID]; !ok {
		return repository.ErrProductNotFound
	}
	purchase.ID = int64(len(m.s.purchases) + 1)
	purchase.PurchasedAt = m.s.now
	m.s.purchases = append(m.s.purchases, *purchase)
	m.s.inserts++
	return nil
}

func (m *mockPurchaseRepository) Trending(ctx context.Context, since time.Time, limit int) ([]domain.TrendingItem, error) {
	totals := map[int64]int64{}
	for _, pc := range m.s.purchases {
		if !pc.PurchasedAt.Before(since) {
			totals[pc.ProductID] += int64(pc.Quantity)
		}
	}
	items := []domain.TrendingItem{}
	for id, total := range totals {
		p := m.s.products[id]
		items = append(items, domain.TrendingItem{ProductID: id, Name: p.Name, Category: p.Category, TotalSold: total})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalSold != items[j].TotalSold {
			return items[i].TotalSold > items[j].TotalSold
		}
		return items[i].ProductID < items[j].ProductID
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// mockTxManager applies writes directly and restores the snapshot when fn fails,
// mirroring a database rollback.
type mockTxManager struct {
	s       *store
	begins  int
	commits int
}

type mockTxRepos struct{ s *store }

func (r mockTxRepos) Products() repository.ProductRepository   { return &mockProductRepository{s: r.s} }
func (r mockTxRepos) Purchases() repository.PurchaseRepository { return &mockPurchaseRepository{s: r.s} }

func (m *mockTxManager) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	m.begins++
	saved, purchases := m.s.snapshot()
	decrements, inserts := m.s.decrements, m.s.inserts

	if err := fn(mockTxRepos{s: m.s}); err != nil {
		m.s.restore(saved, purchases)
		m.s.decrements, m.s.inserts = decrements, inserts
		return err
	}
	m.commits++
	return nil
}
