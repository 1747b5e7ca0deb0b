package services

import (
	"context"
	"errors"

	"shop-backend/internal/domain"
	"shop-backend/internal/repository"
)

var ErrCartItemNotFound = errors.New("item not in cart")

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Get(ctx context.Context, userID uint64) ([]domain.CartItem, error) {
	return s.carts.FindByUser(userID)
}

// Add merges quantities when the product is already in the cart.
func (s *CartService) Add(ctx context.Context, userID, productID uint64, quantity int64) error {
	if quantity < 1 {
		return domain.Validationf("quantity must be at least 1")
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}

	item, err := s.carts.FindItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		item = &domain.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
	} else {
		item.Quantity += quantity
	}
	return s.carts.Save(item)
}

// SetQuantity overwrites the quantity of an existing entry; anything at or
// below zero removes the entry.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID uint64, quantity int64) error {
	item, err := s.carts.FindItem(userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}

	if quantity <= 0 {
		return s.carts.Delete(userID, productID)
	}

	item.Quantity = quantity
	return s.carts.Save(item)
}

// Remove succeeds even when the entry is already gone.
func (s *CartService) Remove(ctx context.Context, userID, productID uint64) error {
	return s.carts.Delete(userID, productID)
}

func (s *CartService) Clear(ctx context.Context, userID uint64) error {
	return s.carts.DeleteAllForUser(userID)
}
