package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
	"github.com/dsmolkov/ecommerce_backend/internal/repo"
)

type OrderService struct {
	Store repo.Store
}

func NewOrderService(store repo.Store) *OrderService {
	return &OrderService{Store: store}
}

// ListForUser returns the caller's own orders, newest first, items attached.
// The ownership filter lives in the query, not in anything the caller sends.
func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.Store.OrdersByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin-only; the role check is
// done once at the request boundary before this is reached.
func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.Store.AllOrders(ctx)
}

// Ship marks an order Shipped. Re-shipping an already shipped order simply
// re-applies the status; there is no guard against it.
func (s *OrderService) Ship(ctx context.Context, orderID uint) (*models.Order, error) {
	if _, err := s.Store.OrderByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if err := s.Store.UpdateOrderStatus(ctx, orderID, models.StatusShipped); err != nil {
		return nil, err
	}
	return s.Store.OrderByID(ctx, orderID)
}
