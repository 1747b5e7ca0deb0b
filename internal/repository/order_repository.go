package repository

import (
	"shop-backend/internal/domain"
)

type OrderRepository interface {
	Save(order *domain.Order) error
	FindByID(id uint64) (*domain.Order, error)
	FindByUser(userID uint64) ([]domain.Order, error)
	FindAll() ([]domain.Order, error)
	// MarkPaid and SetStatus apply only when the stored version still matches;
	// the returned bool reports whether the write landed.
	MarkPaid(id uint64, version uint64, status domain.OrderStatus) (bool, error)
	SetStatus(id uint64, version uint64, status domain.OrderStatus) (bool, error)
	Delete(id uint64) error
}
