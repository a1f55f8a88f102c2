package repository

import (
	"context"
	"testing"

	"supermarket/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestProperty_StoredPasswordsStayHashed(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("stored hash verifies the password and differs from it", prop.ForAll(
		func(username string, password string) bool {
			_, _ = testDB.Exec("DELETE FROM users WHERE username = $1", username)

			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
			if err != nil {
				t.Logf("Failed to hash password: %v", err)
				return false
			}

			user := &domain.User{
				Username:     username,
				PasswordHash: string(hashedPassword),
				Role:         domain.RoleCustomer,
			}
			if err := repo.Create(ctx, user); err != nil {
				t.Logf("Failed to create user: %v", err)
				return false
			}

			retrieved, err := repo.FindByUsername(ctx, username)
			if err != nil {
				t.Logf("Failed to find user: %v", err)
				return false
			}

			if retrieved.PasswordHash == password || retrieved.Role != domain.RoleCustomer {
				return false
			}

			return bcrypt.CompareHashAndPassword([]byte(retrieved.PasswordHash), []byte(password)) == nil
		},
		gen.RegexMatch(`[a-z]{5,20}`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	resetTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "x", Role: domain.RoleCustomer}))

	err := repo.Create(ctx, &domain.User{Username: "alice", PasswordHash: "y", Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUserRepository_FindByUsernameNotFound(t *testing.T) {
	resetTables(t)

	_, err := NewUserRepository(testDB).FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
