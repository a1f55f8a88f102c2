package console

import (
	"context"
	"sort"
	"time"

	"supermarket/internal/domain"
	"supermarket/internal/repository"
	"supermarket/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeUsers struct {
	users     map[string]*domain.User
	passwords map[string]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*domain.User{}, passwords: map[string]string{}}
}

func (f *fakeUsers) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	if in.Password != in.Confirm {
		return nil, service.ErrPasswordMismatch
	}
	if _, taken := f.users[in.Username]; taken {
		return nil, repository.ErrUsernameTaken
	}
	user := &domain.User{ID: int64(len(f.users) + 1), Username: in.Username, Role: in.Role}
	f.users[in.Username] = user
	f.passwords[in.Username] = in.Password
	return user, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok || f.passwords[username] != password || user.Role != role {
		return nil, service.ErrInvalidCredentials
	}
	return user, nil
}

type fakeCatalog struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[int64]*domain.Product{}}
}

func (f *fakeCatalog) seed(name, category, price string, qty int) *domain.Product {
	f.nextID++
	p := &domain.Product{ID: f.nextID, Name: name, Category: category, Price: decimal.RequireFromString(price), Quantity: qty}
	f.products[p.ID] = p
	return p
}

func (f *fakeCatalog) CreateProduct(ctx context.Context, in service.ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Category == "" || in.Price.IsNegative() || in.Quantity < 0 {
		return nil, service.ErrInvalidInput
	}
	return f.seed(in.Name, in.Category, in.Price.String(), in.Quantity), nil
}

func (f *fakeCatalog) UpdateProduct(ctx context.Context, id int64, patch service.ProductPatch) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if patch.Name != nil && *patch.Name != "" {
		p.Name = *patch.Name
	}
	if patch.Category != nil && *patch.Category != "" {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	return p, nil
}

func (f *fakeCatalog) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeCatalog) CountCategory(ctx context.Context, category string) (int, error) {
	products, _ := f.ListByCategory(ctx, category)
	return len(products), nil
}

func (f *fakeCatalog) DeleteCategory(ctx context.Context, category string) (int, error) {
	products, _ := f.ListByCategory(ctx, category)
	for _, p := range products {
		delete(f.products, p.ID)
	}
	return len(products), nil
}

func (f *fakeCatalog) list(keep func(*domain.Product) bool) []*domain.Product {
	out := []*domain.Product{}
	for _, p := range f.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeCatalog) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return f.list(func(*domain.Product) bool { return true }), nil
}

func (f *fakeCatalog) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return f.list(func(p *domain.Product) bool { return p.Category == category }), nil
}

func (f *fakeCatalog) ListByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]*domain.Product, error) {
	if min.GreaterThan(max) {
		return nil, service.ErrInvalidInput
	}
	r := domain.PriceRange{Min: min, Max: max}
	return f.list(func(p *domain.Product) bool { return r.Contains(p.Price) }), nil
}

type fakeCart struct {
	catalog   *fakeCatalog
	checkouts int
}

func (f *fakeCart) AddToCart(ctx context.Context, cart *domain.Cart, productID int64, quantity int) (*domain.Product, error) {
	product, err := f.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(product, quantity); err != nil {
		return nil, err
	}
	return product, nil
}

func (f *fakeCart) Checkout(ctx context.Context, cart *domain.Cart) (*service.Receipt, error) {
	if cart.IsEmpty() {
		return nil, service.ErrEmptyCart
	}
	view := cart.View()
	for _, line := range view.Lines {
		if f.catalog.products[line.ProductID].Quantity < line.Quantity {
			return nil, domain.ErrInsufficientStock
		}
	}
	for _, line := range view.Lines {
		f.catalog.products[line.ProductID].Quantity -= line.Quantity
	}
	f.checkouts++
	cart.Clear()
	return &service.Receipt{CheckoutID: uuid.New(), Lines: view.Lines, Total: view.Total}, nil
}

type fakeReports struct {
	items []domain.TrendingItem
	err   error
}

func (f *fakeReports) Trending(ctx context.Context) ([]domain.TrendingItem, error) {
	return f.items, f.err
}

func (f *fakeReports) Window() time.Duration {
	return service.DefaultTrendingWindow
}
