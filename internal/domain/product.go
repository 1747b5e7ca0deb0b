package domain

import "time"

type Product struct {
	ID          uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Price       float64        `json:"price" gorm:"not null"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Category    string         `json:"category" gorm:"not null;index"`
	Stock       int64          `json:"stock" gorm:"not null"`
	Rating      float64        `json:"rating" gorm:"default:0"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}

type ProductImage struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	ProductID uint64 `json:"-" gorm:"not null;index"`
	URL       string `json:"url" gorm:"size:2048;not null"`
}
