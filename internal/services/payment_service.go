package services

import (
	"context"
	"errors"
	"log"
	"strconv"

	"shop-backend/internal/domain"
	"shop-backend/internal/infra/payment"
)

type PaymentService struct {
	gateway payment.Gateway
	orders  *OrderService
	carts   *CartService
}

func NewPaymentService(gateway payment.Gateway, orders *OrderService, carts *CartService) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		orders:  orders,
		carts:   carts,
	}
}

// CreateCheckoutSession builds the provider session from the order's own
// snapshot, not from anything the client submits.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, orderID uint64) (string, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order.Paid {
		return "", domain.Validationf("order %d is already paid", orderID)
	}

	items := make([]payment.LineItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, payment.LineItem{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	return s.gateway.CreateCheckoutSession(ctx, items, orderID)
}

// HandleWebhook fails closed on a bad signature and open on a missing or
// unknown order id: the provider retries on errors, and no retry can fix a
// payload that never referenced a valid order.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.gateway.ParseWebhook(payload, sigHeader)
	if err != nil {
		return err
	}

	if event.Type != payment.EventCheckoutCompleted {
		return nil
	}

	if event.OrderID == "" {
		log.Printf("checkout completed without orderId metadata, acknowledging")
		return nil
	}
	orderID, err := strconv.ParseUint(event.OrderID, 10, 64)
	if err != nil {
		log.Printf("checkout completed with malformed orderId %q, acknowledging", event.OrderID)
		return nil
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			log.Printf("checkout completed for unknown order %d, acknowledging", orderID)
			return nil
		}
		return err
	}

	if err := s.orders.MarkPaid(ctx, orderID); err != nil {
		return err
	}

	// Payment landed; the items are no longer "in the cart" in any meaningful
	// sense. A failure here must not fail the webhook.
	if err := s.carts.Clear(ctx, order.UserID); err != nil {
		log.Printf("failed to clear cart for user %d after payment: %v", order.UserID, err)
	}

	return nil
}
