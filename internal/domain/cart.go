package domain

// CartItem is a (user, product) pairing not yet committed to an order.
// Quantity stays >= 1; dropping to zero removes the row.
type CartItem struct {
	ID        uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64   `json:"userId" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint64   `json:"productId" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Quantity  int64    `json:"quantity" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
