package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
	"github.com/dsmolkov/ecommerce_backend/internal/repo"
)

type CartService struct {
	Store repo.Store
}

func NewCartService(store repo.Store) *CartService {
	return &CartService{Store: store}
}

// GetCart returns the user's cart joined with current product data. Prices
// here are live catalog prices; the snapshot happens only at checkout.
func (s *CartService) GetCart(ctx context.Context, userID uint) ([]repo.CartLine, error) {
	lines, err := s.Store.CartLines(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart references a missing product", ErrNotFound)
		}
		return nil, err
	}
	return lines, nil
}

// AddItem inserts a cart row or increments an existing one. A zero quantity
// defaults to 1; anything that would leave the row above MaxCartQuantity is
// rejected rather than clamped.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity > models.MaxCartQuantity {
		return nil, fmt.Errorf("%w: quantity must be within 1..%d", ErrValidation, models.MaxCartQuantity)
	}

	if _, err := s.Store.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	item, err := s.Store.CartItemByProduct(ctx, userID, productID)
	switch {
	case err == nil:
		if item.Quantity+quantity > models.MaxCartQuantity {
			return nil, fmt.Errorf("%w: cart line cannot exceed %d", ErrValidation, models.MaxCartQuantity)
		}
		item.Quantity += quantity
		if err := s.Store.SaveCartItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := s.Store.SaveCartItem(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	default:
		return nil, err
	}
}

// RemoveOne decrements a cart row by one and drops the row when it reaches
// zero. The returned flag reports whether the row was deleted.
func (s *CartService) RemoveOne(ctx context.Context, userID, itemID uint) (*models.CartItem, bool, error) {
	item, err := s.Store.CartItemByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return nil, false, err
	}

	if item.Quantity > 1 {
		item.Quantity -= 1
		if err := s.Store.SaveCartItem(ctx, item); err != nil {
			return nil, false, err
		}
		return item, false, nil
	}

	if err := s.Store.DeleteCartItem(ctx, item); err != nil {
		return nil, false, err
	}
	return item, true, nil
}

// RemoveItem drops a cart row regardless of its quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.Store.CartItemByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
		}
		return err
	}
	return s.Store.DeleteCartItem(ctx, item)
}
