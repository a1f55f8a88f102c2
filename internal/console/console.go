// Package console is the interactive menu front end of the shop.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"supermarket/internal/domain"
	"supermarket/internal/repository"
	"supermarket/internal/service"

	"go.uber.org/zap"
)

// Services bundles what the console drives
type Services struct {
	Users   service.UserService
	Catalog service.CatalogService
	Cart    service.CartService
	Reports service.ReportService
}

type Console struct {
	svc    Services
	prompt *prompter
	out    io.Writer
	logger *zap.Logger
}

func New(in io.Reader, out io.Writer, svc Services, logger *zap.Logger) *Console {
	return &Console{
		svc:    svc,
		prompt: newPrompter(in, out),
		out:    out,
		logger: logger,
	}
}

// Run shows the main menu until the user exits. Closed input ends the loop
// without an error; a cancelled context returns its error.
func (c *Console) Run(ctx context.Context) error {
	handlers := map[mainCommand]handler{
		mainRegisterCustomer: func(ctx context.Context) (bool, error) {
			return false, c.register(ctx, domain.RoleCustomer)
		},
		mainCustomerLogin: func(ctx context.Context) (bool, error) {
			return false, c.login(ctx, domain.RoleCustomer)
		},
		mainRegisterAdmin: func(ctx context.Context) (bool, error) {
			return false, c.register(ctx, domain.RoleAdmin)
		},
		mainAdminLogin: func(ctx context.Context) (bool, error) {
			return false, c.login(ctx, domain.RoleAdmin)
		},
		mainExit: func(ctx context.Context) (bool, error) {
			c.println("Exiting application. Goodbye!")
			return true, nil
		},
	}

	err := runMenu(ctx, c, staticTitle("--- SHOP APPLICATION MENU ---"), mainExit, handlers)
	if errors.Is(err, io.EOF) {
		c.println()
		return nil
	}
	return err
}

func (c *Console) register(ctx context.Context, role domain.Role) error {
	c.printf("\n%s registration\n", roleTitle(role))
	username, err := c.prompt.line("Enter a username: ")
	if err != nil {
		return err
	}
	password, err := c.prompt.password("Enter a password: ")
	if err != nil {
		return err
	}
	confirm, err := c.prompt.password("Confirm password: ")
	if err != nil {
		return err
	}

	user, err := c.svc.Users.Register(ctx, service.RegisterInput{
		Username: username,
		Password: password,
		Confirm:  confirm,
		Role:     role,
	})
	if err != nil {
		c.fail("Registration failed", err)
		return nil
	}
	c.logger.Info("User registered", zap.String("username", user.Username), zap.String("role", string(role)))
	c.println("Registered successfully!")
	return nil
}

func (c *Console) login(ctx context.Context, role domain.Role) error {
	username, err := c.prompt.line("Enter your username: ")
	if err != nil {
		return err
	}
	password, err := c.prompt.password("Enter your password: ")
	if err != nil {
		return err
	}

	user, err := c.svc.Users.Login(ctx, username, password, role)
	if err != nil {
		c.fail("Login failed", err)
		return nil
	}
	c.logger.Info("User logged in", zap.String("username", user.Username), zap.String("role", string(role)))
	c.printf("Login successful! Welcome, %s.\n", user.Username)

	session := NewSession(user)
	if role == domain.RoleAdmin {
		return c.adminMenu(ctx, session)
	}
	return c.customerMenu(ctx, session)
}

func roleTitle(role domain.Role) string {
	if role == domain.RoleAdmin {
		return "Admin"
	}
	return "Customer"
}

// expected are the failures a user can cause and fix; anything else is
// logged and reported generically.
var expected = []error{
	domain.ErrInvalidQuantity,
	domain.ErrInsufficientStock,
	domain.ErrNotInCart,
	repository.ErrProductNotFound,
	repository.ErrProductInUse,
	repository.ErrNegativeStock,
	repository.ErrUsernameTaken,
	service.ErrInvalidInput,
	service.ErrEmptyCart,
	service.ErrInvalidCredentials,
	service.ErrPasswordMismatch,
}

func isExpected(err error) bool {
	for _, target := range expected {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (c *Console) fail(action string, err error) {
	if isExpected(err) {
		c.printf("%s: %v\n", action, err)
		return
	}
	c.logger.Error(action, zap.Error(err))
	c.printf("%s: an unexpected error occurred, see the log for details.\n", action)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}
