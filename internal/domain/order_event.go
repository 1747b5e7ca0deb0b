package domain

import "time"

type OrderCreatedEvent struct {
	OrderID   uint64    `json:"orderId"`
	UserID    uint64    `json:"userId"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderPaidEvent struct {
	OrderID uint64    `json:"orderId"`
	UserID  uint64    `json:"userId"`
	PaidAt  time.Time `json:"paidAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	From      OrderStatus `json:"from"`
	To        OrderStatus `json:"to"`
	ChangedAt time.Time   `json:"changedAt"`
}
