package mysql

import (
	"errors"
	"log"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(product *domain.Product) error {
	result := r.db.Create(product)
	if result.Error != nil {
		log.Printf("product save error: %v", result.Error)
		return result.Error
	}
	return nil
}

// Update replaces the image set wholesale; the admin form always submits the
// full list.
func (r *productRepo) Update(product *domain.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
	})
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Preload("Images").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAll() ([]domain.Product, error) {
	var out []domain.Product
	if err := r.db.Preload("Images").Order("created_at DESC").Find(&out).Error; err != nil {
		log.Printf("product FindAll error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Delete(id uint64) error {
	return r.db.Select("Images").Delete(&domain.Product{ID: id}).Error
}
