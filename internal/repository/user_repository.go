package repository

import (
	"shop-backend/internal/domain"
)

type UserRepository interface {
	Save(user *domain.User) error
	FindByID(id uint64) (*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
}
