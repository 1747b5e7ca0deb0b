package mysql

import (
	"errors"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindByUser(userID uint64) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Preload("Product").Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *cartRepo) FindItem(userID, productID uint64) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) Save(item *domain.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepo) Delete(userID, productID uint64) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.CartItem{}).Error
}

func (r *cartRepo) DeleteAllForUser(userID uint64) error {
	return r.db.Where("user_id = ?", userID).Delete(&domain.CartItem{}).Error
}
