package services

import (
	"context"
	"errors"
	"strings"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotAdmin           = errors.New("admins only")
)

const bcryptCost = 10

type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, domain.Validationf("name, email and password are required")
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleUser,
	}
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns ErrInvalidCredentials for both an unknown email and a wrong
// password; callers cannot tell the two apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
