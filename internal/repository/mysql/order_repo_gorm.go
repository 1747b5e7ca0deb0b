package mysql

import (
	"errors"
	"log"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(order *domain.Order) error {
	result := r.db.Create(order)
	if result.Error != nil {
		log.Printf("order save error: %v", result.Error)
		return result.Error
	}
	if order.ID == 0 {
		return errors.New("failed to assign order ID")
	}
	return nil
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.Preload("Items").Preload("Items.Product").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("order FindByUser error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		log.Printf("order FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

// MarkPaid is a compare-and-swap on the version column. A stale version means
// another writer got there first; the caller rereads and retries.
func (r *orderRepo) MarkPaid(id uint64, version uint64, status domain.OrderStatus) (bool, error) {
	res := r.db.Model(&domain.Order{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"paid":    true,
			"status":  status,
			"version": version + 1,
		})
	if res.Error != nil {
		log.Printf("order MarkPaid error: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) SetStatus(id uint64, version uint64, status domain.OrderStatus) (bool, error) {
	res := r.db.Model(&domain.Order{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]any{
			"status":  status,
			"version": version + 1,
		})
	if res.Error != nil {
		log.Printf("order SetStatus error: %v", res.Error)
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *orderRepo) Delete(id uint64) error {
	return r.db.Select("Items").Delete(&domain.Order{ID: id}).Error
}
