package http

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"min=0"`
	Images      []string `json:"images"`
	Category    string   `json:"category" binding:"required"`
	Stock       int64    `json:"stock" binding:"min=0"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
}

type CartAddRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// Quantity is deliberately unbounded below: zero or negative removes the
// entry.
type CartUpdateRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity"`
}

type CartRemoveRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
}

type ShippingAddressRequest struct {
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

type OrderLineRequest struct {
	ProductID uint64 `json:"product" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderLineRequest     `json:"items" binding:"dive"`
	Total           float64                `json:"total"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CheckoutSessionRequest struct {
	OrderID uint64 `json:"orderId" binding:"required"`
}
