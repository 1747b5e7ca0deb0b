package repository

import (
	"shop-backend/internal/domain"
)

type CartRepository interface {
	FindByUser(userID uint64) ([]domain.CartItem, error)
	FindItem(userID, productID uint64) (*domain.CartItem, error)
	Save(item *domain.CartItem) error
	Delete(userID, productID uint64) error
	DeleteAllForUser(userID uint64) error
}
