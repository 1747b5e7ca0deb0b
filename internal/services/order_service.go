package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"shop-backend/internal/domain"
	rabbit "shop-backend/internal/infra/rabbitmq"
	"shop-backend/internal/repository"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderConflict means the version-guarded update kept losing to
	// concurrent writers after several retries.
	ErrOrderConflict = errors.New("order was modified concurrently")
)

// totalTolerance absorbs float rounding between client and server; anything
// beyond half a cent is a real mismatch.
const totalTolerance = 0.005

const statusUpdateRetries = 3

// OrderLine is the client's view of an order line: a product reference and a
// quantity. Prices are never taken from the client.
type OrderLine struct {
	ProductID uint64
	Quantity  int64
}

type OrderService struct {
	repo      repository.OrderRepository
	products  repository.ProductRepository
	publisher rabbit.PublisherInterface
}

func NewOrderService(repo repository.OrderRepository, products repository.ProductRepository, publisher rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		repo:      repo,
		products:  products,
		publisher: publisher,
	}
}

// CreateOrder snapshots the referenced products into an immutable order.
// Unit prices are resolved from the catalog at call time and frozen; the
// submitted total is recomputed server-side and rejected on mismatch.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint64, lines []OrderLine, total float64, address domain.ShippingAddress, paymentMethod string) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.Validationf("no order items")
	}
	if address.Address == "" || address.City == "" || address.PostalCode == "" || address.Country == "" {
		return nil, domain.Validationf("shipping address requires address, city, postal code and country")
	}
	if paymentMethod == "" {
		return nil, domain.Validationf("payment method is required")
	}

	items := make([]domain.OrderItem, 0, len(lines))
	var computed float64
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, domain.Validationf("quantity must be at least 1 for product %d", line.ProductID)
		}
		product, err := s.products.FindByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
		computed += product.Price * float64(line.Quantity)
	}

	if math.Abs(computed-total) > totalTolerance {
		return nil, domain.Validationf("submitted total %.2f does not match order total %.2f", total, computed)
	}

	order := &domain.Order{
		UserID:          userID,
		Items:           items,
		Total:           computed,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
		Status:          domain.StatusPending,
		Paid:            false,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Save(order); err != nil {
		return nil, err
	}

	go s.publishEvent(context.Background(), "order.created", domain.OrderCreatedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	})

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// ListForUser drops line items whose product has since been deleted from the
// catalog; the stored snapshot stays untouched.
func (s *OrderService) ListForUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	orders, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		filtered := orders[i].Items[:0]
		for _, item := range orders[i].Items {
			if item.Product != nil {
				filtered = append(filtered, item)
			}
		}
		orders[i].Items = filtered
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.FindAll()
}

// MarkPaid flips the paid flag and advances a pending order to processing.
// Replays are no-ops; a racing status writer forces a reread and retry.
func (s *OrderService) MarkPaid(ctx context.Context, id uint64) error {
	for attempt := 0; attempt < statusUpdateRetries; attempt++ {
		o, err := s.repo.FindByID(id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if o.Paid {
			return nil
		}

		status := o.Status
		if status == domain.StatusPending {
			status = domain.StatusProcessing
		}

		applied, err := s.repo.MarkPaid(id, o.Version, status)
		if err != nil {
			return err
		}
		if applied {
			go s.publishEvent(context.Background(), "order.paid", domain.OrderPaidEvent{
				OrderID: o.ID,
				UserID:  o.UserID,
				PaidAt:  time.Now(),
			})
			return nil
		}
	}
	return ErrOrderConflict
}

// SetStatus enforces the transition table; setting the current status again
// is a no-op so replayed admin requests stay harmless.
func (s *OrderService) SetStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	if !status.Valid() {
		return domain.Validationf("invalid status %q", status)
	}

	for attempt := 0; attempt < statusUpdateRetries; attempt++ {
		o, err := s.repo.FindByID(id)
		if err != nil {
			return err
		}
		if o == nil {
			return ErrOrderNotFound
		}
		if o.Status == status {
			return nil
		}
		if !o.Status.CanTransitionTo(status) {
			return domain.Validationf("cannot transition order from %q to %q", o.Status, status)
		}

		applied, err := s.repo.SetStatus(id, o.Version, status)
		if err != nil {
			return err
		}
		if applied {
			go s.publishEvent(context.Background(), "order.status_changed", domain.OrderStatusChangedEvent{
				OrderID:   o.ID,
				From:      o.Status,
				To:        status,
				ChangedAt: time.Now(),
			})
			return nil
		}
	}
	return ErrOrderConflict
}

func (s *OrderService) Delete(ctx context.Context, id uint64) error {
	o, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrOrderNotFound
	}
	return s.repo.Delete(id)
}

func (s *OrderService) publishEvent(ctx context.Context, pattern string, data any) {
	if err := s.publisher.Publish(ctx, pattern, data); err != nil {
		log.Printf("Failed to publish %s event: %v", pattern, err)
	}
}
