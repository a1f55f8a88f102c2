package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"supermarket/internal/domain"
	"supermarket/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
)

// UserService defines the interface for account registration and login
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
}

// RegisterInput carries the registration form
type RegisterInput struct {
	Username string      `validate:"required,min=3,max=50"`
	Password string      `validate:"required,min=4,max=72"`
	Confirm  string      `validate:"required"`
	Role     domain.Role `validate:"required,oneof=admin customer"`
}

type userService struct {
	userRepo repository.UserRepository
	cost     int
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, cost: BcryptCost}
}

// newUserServiceWithCost lets tests use a cheap bcrypt cost
func newUserServiceWithCost(userRepo repository.UserRepository, cost int) UserService {
	return &userService{userRepo: userRepo, cost: cost}
}

// Register creates a new account with a hashed password
func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)

	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Password != in.Confirm {
		return nil, ErrPasswordMismatch
	}

	hashedPassword, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: hashedPassword,
		Role:         in.Role,
	}

	// The unique constraint decides races between two registrations.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, repository.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user for the given role
func (s *userService) Login(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.verifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role != role {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *userService) verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
