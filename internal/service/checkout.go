package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
	"github.com/dsmolkov/ecommerce_backend/internal/repo"
)

// CheckoutService converts a cart into an immutable, price-snapshotted
// order. The whole read-cart/create-order/clear-cart sequence runs inside
// one storage transaction, so a concurrent checkout of the same cart either
// serializes behind it or sees an already-empty cart.
type CheckoutService struct {
	Store repo.Store
	Now   func() time.Time
}

func NewCheckoutService(store repo.Store) *CheckoutService {
	return &CheckoutService{
		Store: store,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	var order *models.Order

	err := s.Store.InTx(ctx, func(tx repo.Store) error {
		if _, err := tx.UserByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrUnauthenticated, userID)
			}
			return err
		}

		lines, err := tx.CartLines(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart references a missing product", ErrNotFound)
			}
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: nothing to check out", ErrEmptyCart)
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		for _, ln := range lines {
			// Name and price are copied here so later product edits or
			// deletes never change this order.
			items = append(items, models.OrderItem{
				ProductID:   ln.Product.ID,
				ProductName: ln.Product.Name,
				Price:       ln.Product.Price,
				Quantity:    ln.Item.Quantity,
			})
			total = total.Add(ln.Product.Price.Mul(decimal.NewFromInt(int64(ln.Item.Quantity))))
		}

		o := &models.Order{
			UserID:      userID,
			CreatedAt:   s.Now(),
			TotalAmount: total,
			Status:      models.StatusPending,
			Items:       items,
		}
		if err := tx.CreateOrder(ctx, o); err != nil {
			return err
		}
		deleted, err := tx.ClearCart(ctx, userID)
		if err != nil {
			return err
		}
		// Fewer deleted rows than snapshotted lines means a concurrent
		// checkout consumed this cart first. Rolling back here keeps one
		// cart state producing exactly one order, even when the store runs
		// at read-committed isolation.
		if deleted < int64(len(lines)) {
			return fmt.Errorf("%w: cart already checked out", ErrEmptyCart)
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
