package repository

import (
	"shop-backend/internal/domain"
)

type ProductRepository interface {
	Save(product *domain.Product) error
	Update(product *domain.Product) error
	FindByID(id uint64) (*domain.Product, error)
	FindAll() ([]domain.Product, error)
	Delete(id uint64) error
}
