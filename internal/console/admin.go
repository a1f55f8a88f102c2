package console

import (
	"context"
	"fmt"
	"strings"

	"supermarket/internal/service"
)

func (c *Console) adminMenu(ctx context.Context, s *Session) error {
	handlers := map[adminCommand]handler{
		adminAddProduct: func(ctx context.Context) (bool, error) {
			return false, c.addProduct(ctx)
		},
		adminViewProducts: func(ctx context.Context) (bool, error) {
			return false, c.viewProducts(ctx)
		},
		adminUpdateProduct: func(ctx context.Context) (bool, error) {
			return false, c.updateProduct(ctx)
		},
		adminDeleteProduct: func(ctx context.Context) (bool, error) {
			return false, c.deleteMenu(ctx)
		},
		adminLogout: func(ctx context.Context) (bool, error) {
			s.Logout()
			c.println("Logging out...")
			return true, nil
		},
	}

	title := staticTitle(fmt.Sprintf("Welcome %s! Product Management Menu:", s.User.Username))
	return runMenu(ctx, c, title, adminLogout, handlers)
}

func (c *Console) addProduct(ctx context.Context) error {
	c.println("\nAdd Product")
	name, err := c.prompt.line("Product name: ")
	if err != nil {
		return err
	}
	category, err := c.prompt.line("Category: ")
	if err != nil {
		return err
	}
	price, err := c.prompt.money("Price: ")
	if err == errInvalidNumber {
		c.println("Invalid input for price. Product not added.")
		return nil
	}
	if err != nil {
		return err
	}
	qty, err := c.prompt.number("Quantity: ")
	if err == errInvalidNumber {
		c.println("Invalid input for quantity. Product not added.")
		return nil
	}
	if err != nil {
		return err
	}

	product, err := c.svc.Catalog.CreateProduct(ctx, service.ProductInput{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: qty,
	})
	if err != nil {
		c.fail("Product not added", err)
		return nil
	}
	c.printf("Product added successfully! (ID %d)\n", product.ID)
	return nil
}

func (c *Console) viewProducts(ctx context.Context) error {
	products, err := c.svc.Catalog.ListAll(ctx)
	if err != nil {
		c.fail("Could not list products", err)
		return nil
	}
	if len(products) == 0 {
		c.println("No products found.")
		return nil
	}
	c.println()
	return renderProducts(c.out, products)
}

func (c *Console) updateProduct(ctx context.Context) error {
	id, err := c.prompt.number("Enter Product ID to update: ")
	if err == errInvalidNumber {
		c.println("Invalid ID entered.")
		return nil
	}
	if err != nil {
		return err
	}

	product, err := c.svc.Catalog.GetProduct(ctx, int64(id))
	if err != nil {
		c.fail("Update failed", err)
		return nil
	}

	c.println("Leave blank if you don't want to update a field.")
	var patch service.ProductPatch
	name, err := c.prompt.line(fmt.Sprintf("New name [%s]: ", product.Name))
	if err != nil {
		return err
	}
	category, err := c.prompt.line(fmt.Sprintf("New category [%s]: ", product.Category))
	if err != nil {
		return err
	}
	patch.Name, patch.Category = &name, &category

	if patch.Price, err = c.prompt.optionalMoney(fmt.Sprintf("New price [%s]: ", product.Price.StringFixed(2))); err != nil {
		if err == errInvalidNumber {
			c.println("Invalid input for price. Update cancelled.")
			return nil
		}
		return err
	}
	if patch.Quantity, err = c.prompt.optionalNumber(fmt.Sprintf("New quantity [%d]: ", product.Quantity)); err != nil {
		if err == errInvalidNumber {
			c.println("Invalid input for quantity. Update cancelled.")
			return nil
		}
		return err
	}

	if _, err := c.svc.Catalog.UpdateProduct(ctx, product.ID, patch); err != nil {
		c.fail("Update failed", err)
		return nil
	}
	c.println("Product updated successfully!")
	return nil
}

func (c *Console) deleteMenu(ctx context.Context) error {
	handlers := map[deleteCommand]handler{
		deleteSingle: func(ctx context.Context) (bool, error) {
			return false, c.deleteOne(ctx)
		},
		deleteCategory: func(ctx context.Context) (bool, error) {
			return false, c.deleteCategory(ctx)
		},
		deleteBack: func(ctx context.Context) (bool, error) {
			c.println("Exiting Deletion Menu.")
			return true, nil
		},
	}
	return runMenu(ctx, c, staticTitle("--- Product Deletion Menu ---"), deleteBack, handlers)
}

func (c *Console) deleteOne(ctx context.Context) error {
	id, err := c.prompt.number("Enter Product ID to delete: ")
	if err == errInvalidNumber {
		c.println("Invalid ID entered.")
		return nil
	}
	if err != nil {
		return err
	}

	product, err := c.svc.Catalog.GetProduct(ctx, int64(id))
	if err != nil {
		c.fail("Deletion failed", err)
		return nil
	}

	ok, err := c.prompt.confirm(fmt.Sprintf("Are you sure you want to delete '%s'?", product.Name))
	if err != nil {
		return err
	}
	if !ok {
		c.println("Deletion cancelled.")
		return nil
	}

	if err := c.svc.Catalog.DeleteProduct(ctx, product.ID); err != nil {
		c.fail("Deletion failed", err)
		return nil
	}
	c.println("Product deleted successfully!")
	return nil
}

func (c *Console) deleteCategory(ctx context.Context) error {
	category, err := c.prompt.line("Enter the Category you want to delete: ")
	if err != nil {
		return err
	}
	category = strings.TrimSpace(category)

	count, err := c.svc.Catalog.CountCategory(ctx, category)
	if err != nil {
		c.fail("Deletion failed", err)
		return nil
	}
	if count == 0 {
		c.printf("No products found in category: %s.\n", category)
		return nil
	}

	ok, err := c.prompt.confirm(fmt.Sprintf("Are you sure you want to delete ALL %d products in '%s'?", count, category))
	if err != nil {
		return err
	}
	if !ok {
		c.println("Deletion cancelled.")
		return nil
	}

	deleted, err := c.svc.Catalog.DeleteCategory(ctx, category)
	if err != nil {
		c.fail("Deletion failed", err)
		return nil
	}
	c.printf("Successfully deleted %d products from category: %s.\n", deleted, category)
	return nil
}
