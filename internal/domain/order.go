package domain

import "time"

type ShippingAddress struct {
	Address    string `json:"address" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	PostalCode string `json:"postalCode" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
}

// OrderItem is the frozen copy of a product at order-creation time. Name and
// UnitPrice never change after that, no matter what happens to the catalog.
type OrderItem struct {
	ID        uint64   `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64   `json:"-" gorm:"not null;index"`
	ProductID uint64   `json:"productId" gorm:"not null"`
	Name      string   `json:"name" gorm:"not null"`
	UnitPrice float64  `json:"unitPrice" gorm:"not null"`
	Quantity  int64    `json:"quantity" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type Order struct {
	ID              uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint64          `json:"userId" gorm:"not null;index"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Total           float64         `json:"total" gorm:"not null"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"paymentMethod" gorm:"not null"`
	Status          OrderStatus     `json:"status" gorm:"type:enum('pending','processing','shipped','delivered','cancelled');default:'pending'"`
	Paid            bool            `json:"isPaid" gorm:"not null;default:false"`
	// Version guards paid/status writes against racing writers (admin update
	// vs. payment webhook). Bumped on every conditional update.
	Version   uint64    `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
