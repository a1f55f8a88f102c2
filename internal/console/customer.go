package console

import (
	"context"
	"fmt"
	"time"

	"supermarket/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (c *Console) customerMenu(ctx context.Context, s *Session) error {
	step := func(fn func(context.Context, *Session) error) handler {
		return func(ctx context.Context) (bool, error) {
			return false, fn(ctx, s)
		}
	}

	handlers := map[customerCommand]handler{
		customerShop:           step(c.shop),
		customerViewCart:       step(c.viewCart),
		customerRemoveFromCart: step(c.removeFromCart),
		customerCheckout:       step(c.checkout),
		customerInventory: func(ctx context.Context) (bool, error) {
			return false, c.viewInventory(ctx)
		},
		customerTrending: func(ctx context.Context) (bool, error) {
			return false, c.viewTrending(ctx)
		},
		customerLogout: func(ctx context.Context) (bool, error) {
			c.logger.Info("User logged out",
				zap.String("username", s.User.Username),
				zap.Int("abandoned_lines", s.Cart.Len()),
			)
			s.Logout()
			c.println("Logging out.")
			return true, nil
		},
	}

	title := func() string {
		return fmt.Sprintf("--- USER MENU (%s, %d in cart) ---", s.User.Username, s.Cart.Len())
	}
	return runMenu(ctx, c, title, customerLogout, handlers)
}

func (c *Console) shop(ctx context.Context, s *Session) error {
	if err := c.viewInventory(ctx); err != nil {
		return err
	}

	id, err := c.prompt.number("\nEnter the ID of the product you want to add: ")
	if err == errInvalidNumber {
		c.println("Invalid input. Please enter a number for product ID and quantity.")
		return nil
	}
	if err != nil {
		return err
	}
	qty, err := c.prompt.number("Enter the quantity: ")
	if err == errInvalidNumber {
		c.println("Invalid input. Please enter a number for product ID and quantity.")
		return nil
	}
	if err != nil {
		return err
	}

	_, already := s.Cart.Line(int64(id))
	product, err := c.svc.Cart.AddToCart(ctx, s.Cart, int64(id), qty)
	if err != nil {
		c.fail("Could not add to cart", err)
		return nil
	}
	if already {
		c.printf("Added %d more of '%s' to your cart.\n", qty, product.Name)
	} else {
		c.printf("Added %d of '%s' to your cart.\n", qty, product.Name)
	}
	return nil
}

func (c *Console) viewCart(_ context.Context, s *Session) error {
	if s.Cart.IsEmpty() {
		c.println("Your cart is empty.")
		return nil
	}
	c.println("\n--- YOUR CART ---")
	return renderCart(c.out, s.Cart.View())
}

func (c *Console) removeFromCart(ctx context.Context, s *Session) error {
	if s.Cart.IsEmpty() {
		c.println("Your cart is empty. Nothing to remove.")
		return nil
	}
	if err := c.viewCart(ctx, s); err != nil {
		return err
	}

	id, err := c.prompt.number("\nEnter the ID of the product to remove: ")
	if err == errInvalidNumber {
		c.println("Invalid input. Please enter a number.")
		return nil
	}
	if err != nil {
		return err
	}
	if _, ok := s.Cart.Line(int64(id)); !ok {
		c.printf("Product with ID %d is not in your cart.\n", id)
		return nil
	}

	qty, err := c.prompt.optionalNumber("Enter the quantity to remove (press Enter to remove all): ")
	if err == errInvalidNumber {
		c.println("Invalid input. Please enter a number.")
		return nil
	}
	if err != nil {
		return err
	}

	var before domain.CartLine
	if qty == nil {
		before, err = s.Cart.RemoveAll(int64(id))
	} else {
		before, err = s.Cart.Remove(int64(id), *qty)
	}
	if err != nil {
		c.fail("Could not remove from cart", err)
		return nil
	}

	if _, still := s.Cart.Line(int64(id)); still {
		c.printf("%d units of '%s' have been removed from your cart.\n", *qty, before.Name)
	} else {
		c.printf("All units of '%s' have been removed from your cart.\n", before.Name)
	}
	return nil
}

func (c *Console) checkout(ctx context.Context, s *Session) error {
	if s.Cart.IsEmpty() {
		c.println("Your cart is empty. Nothing to checkout.")
		return nil
	}
	if err := c.viewCart(ctx, s); err != nil {
		return err
	}

	ok, err := c.prompt.confirm("Confirm purchase?")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Checkout cancelled.")
		return nil
	}

	receipt, err := c.svc.Cart.Checkout(ctx, s.Cart)
	if err != nil {
		c.fail("Purchase failed", err)
		return nil
	}
	c.printf("\nCheckout successful! Thank you for your purchase.\nReceipt %s, total %s\n",
		receipt.CheckoutID, money(receipt.Total))
	return nil
}

// viewInventory asks for one of the three query modes and prints the result
func (c *Console) viewInventory(ctx context.Context) error {
	cmd, ok, err := choose(c, "-----VIEW OPTIONS-----", inventoryByPriceRange)
	if err != nil {
		return err
	}
	if !ok {
		c.println("Invalid choice.")
		return nil
	}

	var products []*domain.Product
	switch cmd {
	case inventoryAll:
		products, err = c.svc.Catalog.ListAll(ctx)
	case inventoryByCategory:
		category, perr := c.prompt.line("Enter category: ")
		if perr != nil {
			return perr
		}
		products, err = c.svc.Catalog.ListByCategory(ctx, category)
	case inventoryByPriceRange:
		min, max, ok, perr := c.readPriceRange()
		if perr != nil {
			return perr
		}
		if !ok {
			c.println("Invalid price input.")
			return nil
		}
		products, err = c.svc.Catalog.ListByPriceRange(ctx, min, max)
	}
	if err != nil {
		c.fail("Could not list inventory", err)
		return nil
	}

	if len(products) == 0 {
		c.println("No products found matching your criteria.")
		return nil
	}
	return renderProducts(c.out, products)
}

func (c *Console) readPriceRange() (min, max decimal.Decimal, ok bool, err error) {
	min, err = c.prompt.money("Enter minimum price: ")
	if err == nil {
		max, err = c.prompt.money("Enter maximum price: ")
	}
	if err == errInvalidNumber {
		return min, max, false, nil
	}
	return min, max, err == nil, err
}

func (c *Console) viewTrending(ctx context.Context) error {
	days := int(c.svc.Reports.Window() / (24 * time.Hour))
	c.printf("\n--- TRENDING PRODUCTS (LAST %d DAYS) ---\n", days)

	items, err := c.svc.Reports.Trending(ctx)
	if err != nil {
		c.fail("Could not build the trending report", err)
		return nil
	}
	if len(items) == 0 {
		c.printf("No purchase data available in the last %d days. Start shopping to see what's trending!\n", days)
		return nil
	}
	return renderTrending(c.out, items)
}
