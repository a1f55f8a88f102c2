package console

import (
	"context"
	"fmt"
)

// command is a numbered menu entry. Values start at 1 and are contiguous.
type command interface {
	~int
	fmt.Stringer
}

// handler runs one menu entry. done leaves the menu; a non-nil error ends the
// whole console (closed input or cancelled context).
type handler func(ctx context.Context) (done bool, err error)

type mainCommand int

const (
	mainRegisterCustomer mainCommand = iota + 1
	mainCustomerLogin
	mainRegisterAdmin
	mainAdminLogin
	mainExit
)

func (c mainCommand) String() string {
	switch c {
	case mainRegisterCustomer:
		return "Register"
	case mainCustomerLogin:
		return "Login"
	case mainRegisterAdmin:
		return "Register Admin"
	case mainAdminLogin:
		return "Admin Login"
	case mainExit:
		return "Exit"
	}
	return "unknown"
}

type customerCommand int

const (
	customerShop customerCommand = iota + 1
	customerViewCart
	customerRemoveFromCart
	customerCheckout
	customerInventory
	customerTrending
	customerLogout
)

func (c customerCommand) String() string {
	switch c {
	case customerShop:
		return "Shop (Add items to your cart)"
	case customerViewCart:
		return "View Cart"
	case customerRemoveFromCart:
		return "Remove a Product from Cart"
	case customerCheckout:
		return "Checkout"
	case customerInventory:
		return "View Inventory"
	case customerTrending:
		return "View Trending Products"
	case customerLogout:
		return "Logout"
	}
	return "unknown"
}

type inventoryCommand int

const (
	inventoryAll inventoryCommand = iota + 1
	inventoryByCategory
	inventoryByPriceRange
)

func (c inventoryCommand) String() string {
	switch c {
	case inventoryAll:
		return "View all inventory"
	case inventoryByCategory:
		return "View by category"
	case inventoryByPriceRange:
		return "View by price range"
	}
	return "unknown"
}

type adminCommand int

const (
	adminAddProduct adminCommand = iota + 1
	adminViewProducts
	adminUpdateProduct
	adminDeleteProduct
	adminLogout
)

func (c adminCommand) String() string {
	switch c {
	case adminAddProduct:
		return "Add Product"
	case adminViewProducts:
		return "View Products"
	case adminUpdateProduct:
		return "Update Product"
	case adminDeleteProduct:
		return "Delete Product"
	case adminLogout:
		return "Logout"
	}
	return "unknown"
}

type deleteCommand int

const (
	deleteSingle deleteCommand = iota + 1
	deleteCategory
	deleteBack
)

func (c deleteCommand) String() string {
	switch c {
	case deleteSingle:
		return "Delete a Single Product"
	case deleteCategory:
		return "Delete a Category"
	case deleteBack:
		return "Exit to Product Menu"
	}
	return "unknown"
}

// choose prints the entries 1..last and reads one answer. ok is false when the
// answer names no entry.
func choose[C command](c *Console, title string, last C) (cmd C, ok bool, err error) {
	c.printf("\n%s\n", title)
	for entry := C(1); entry <= last; entry++ {
		c.printf("%d. %s\n", int(entry), entry)
	}

	n, err := c.prompt.number(fmt.Sprintf("Enter your choice (1-%d): ", int(last)))
	if err == errInvalidNumber {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if n < 1 || n > int(last) {
		return 0, false, nil
	}
	return C(n), true, nil
}

// runMenu loops until a handler reports done. An unknown choice prints a
// notice and shows the menu again without touching any state.
func runMenu[C command](ctx context.Context, c *Console, title func() string, last C, handlers map[C]handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, ok, err := choose(c, title(), last)
		if err != nil {
			return err
		}
		h, found := handlers[cmd]
		if !ok || !found {
			c.println("Invalid choice. Please try again.")
			continue
		}

		done, err := h(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func staticTitle(s string) func() string {
	return func() string { return s }
}
