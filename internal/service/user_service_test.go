package service

import (
	"context"
	"errors"
	"testing"

	"supermarket/internal/domain"
	"supermarket/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestProperty_RegistrationCreatesHashedPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are hashed with bcrypt and not stored as plaintext", prop.ForAll(
		func(username string, password string) bool {
			userRepo := newMockUserRepository()
			service := newUserServiceWithCost(userRepo, bcrypt.MinCost)
			ctx := context.Background()

			user, err := service.Register(ctx, RegisterInput{
				Username: username,
				Password: password,
				Confirm:  password,
				Role:     domain.RoleCustomer,
			})
			if err != nil {
				t.Logf("FAIL: registration failed: %v", err)
				return false
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: Password stored as plaintext for %s", username)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: Password hash does not verify: %v", err)
				return false
			}

			stored, err := userRepo.FindByUsername(ctx, username)
			return err == nil && stored.PasswordHash == user.PasswordHash
		},
		gen.RegexMatch(`[a-z]{3,20}`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_LoginSucceedsOnlyWithTheRightPassword(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("registered users log in with their password and no other", prop.ForAll(
		func(username string, password string, wrong string) bool {
			service := newUserServiceWithCost(newMockUserRepository(), bcrypt.MinCost)
			ctx := context.Background()

			_, err := service.Register(ctx, RegisterInput{
				Username: username, Password: password, Confirm: password, Role: domain.RoleAdmin,
			})
			if err != nil {
				return false
			}

			user, err := service.Login(ctx, username, password, domain.RoleAdmin)
			if err != nil || user.Username != username {
				t.Logf("FAIL: login failed: %v", err)
				return false
			}

			if wrong == password {
				return true
			}
			_, err = service.Login(ctx, username, wrong, domain.RoleAdmin)
			return errors.Is(err, ErrInvalidCredentials)
		},
		gen.RegexMatch(`[a-z]{3,20}`),
		gen.RegexMatch(`[A-Za-z0-9]{8,20}`),
		gen.RegexMatch(`[A-Za-z0-9]{4,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service := newUserServiceWithCost(newMockUserRepository(), bcrypt.MinCost)
	in := RegisterInput{Username: "alice", Password: "secret1", Confirm: "secret1", Role: domain.RoleCustomer}

	_, err := service.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	userRepo := newMockUserRepository()
	service := newUserServiceWithCost(userRepo, bcrypt.MinCost)

	_, err := service.Register(context.Background(), RegisterInput{
		Username: "alice", Password: "secret1", Confirm: "secret2", Role: domain.RoleCustomer,
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.Empty(t, userRepo.users)
}

func TestRegister_Validation(t *testing.T) {
	service := newUserServiceWithCost(newMockUserRepository(), bcrypt.MinCost)

	tests := []struct {
		name string
		in   RegisterInput
		want string
	}{
		{"short username", RegisterInput{Username: "ab", Password: "secret", Confirm: "secret", Role: domain.RoleCustomer}, "Username"},
		{"blank username", RegisterInput{Username: "   ", Password: "secret", Confirm: "secret", Role: domain.RoleCustomer}, "Username"},
		{"short password", RegisterInput{Username: "alice", Password: "abc", Confirm: "abc", Role: domain.RoleCustomer}, "Password"},
		{"unknown role", RegisterInput{Username: "alice", Password: "secret", Confirm: "secret", Role: "cashier"}, "Role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Register(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLogin_UnknownUserAndWrongRole(t *testing.T) {
	service := newUserServiceWithCost(newMockUserRepository(), bcrypt.MinCost)
	ctx := context.Background()

	_, err := service.Login(ctx, "ghost", "whatever", domain.RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Register(ctx, RegisterInput{Username: "bob", Password: "secret", Confirm: "secret", Role: domain.RoleCustomer})
	require.NoError(t, err)

	_, err = service.Login(ctx, "bob", "secret", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewUserService_UsesDefaultCost(t *testing.T) {
	userRepo := newMockUserRepository()
	service := NewUserService(userRepo)

	user, err := service.Register(context.Background(), RegisterInput{
		Username: "carol", Password: "secret", Confirm: "secret", Role: domain.RoleCustomer,
	})
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
}
