package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// CartLine is a pending purchase of one product. Name and unit price are
// snapshots taken when the product was first added.
type CartLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is unit price times quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartView is a read-only rendering of a cart
type CartView struct {
	Lines []CartLine
	Total decimal.Decimal
}

// Cart holds one session's pending purchases keyed by product id.
// The zero value is not usable; call NewCart.
type Cart struct {
	lines map[int64]*CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{lines: make(map[int64]*CartLine)}
}

// Add puts quantity units of product into the cart. Stock is checked against
// the product as read now and is not reserved.
func (c *Cart) Add(product *Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	inCart := 0
	if line, ok := c.lines[product.ID]; ok {
		inCart = line.Quantity
	}

	// compared without summing so a huge quantity cannot wrap around
	if quantity > product.Quantity-inCart {
		return fmt.Errorf("%w: only %d left", ErrInsufficientStock, product.Quantity-inCart)
	}

	if line, ok := c.lines[product.ID]; ok {
		line.Quantity += quantity
		return nil
	}

	c.lines[product.ID] = &CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	}
	return nil
}

// Remove takes quantity units of a product out of the cart. Removing at least
// the line quantity deletes the line. It returns the line as it was before removal.
func (c *Cart) Remove(productID int64, quantity int) (CartLine, error) {
	line, ok := c.lines[productID]
	if !ok {
		return CartLine{}, ErrNotInCart
	}
	if quantity <= 0 {
		return CartLine{}, ErrInvalidQuantity
	}

	before := *line
	if quantity >= line.Quantity {
		delete(c.lines, productID)
	} else {
		line.Quantity -= quantity
	}
	return before, nil
}

// RemoveAll deletes the line for productID
func (c *Cart) RemoveAll(productID int64) (CartLine, error) {
	line, ok := c.lines[productID]
	if !ok {
		return CartLine{}, ErrNotInCart
	}
	return c.Remove(productID, line.Quantity)
}

// Line returns a copy of the line for productID
func (c *Cart) Line(productID int64) (CartLine, bool) {
	line, ok := c.lines[productID]
	if !ok {
		return CartLine{}, false
	}
	return *line, true
}

// Lines returns copies of all lines ordered by product id
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

// View returns the lines with the grand total
func (c *Cart) View() CartView {
	lines := c.Lines()
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return CartView{Lines: lines, Total: total}
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart
func (c *Cart) Clear() {
	clear(c.lines)
}
