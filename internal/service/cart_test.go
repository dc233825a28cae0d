package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dsmolkov/ecommerce_backend/internal/models"
)

func TestAddItemIncrementsExistingRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "buyer")
	p := seedProduct(t, store, "P", "10.00")

	svc := NewCartService(store)
	_, err := svc.AddItem(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)
	item, err := svc.AddItem(ctx, user.ID, p.ID, 3)
	require.NoError(t, err)

	require.EqualValues(t, 5, item.Quantity)
	require.EqualValues(t, 1, countCartItems(t, store, user.ID))
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "buyer")
	p := seedProduct(t, store, "P", "10.00")

	item, err := NewCartService(store).AddItem(ctx, user.ID, p.ID, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, item.Quantity)
}

func TestAddItemRejectsOutOfRangeQuantity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "buyer")
	p := seedProduct(t, store, "P", "10.00")

	svc := NewCartService(store)

	_, err := svc.AddItem(ctx, user.ID, p.ID, models.MaxCartQuantity+1)
	require.ErrorIs(t, err, ErrValidation)

	// Increments that would cross the limit are rejected, the row keeps
	// its previous quantity.
	_, err = svc.AddItem(ctx, user.ID, p.ID, 60)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, user.ID, p.ID, 50)
	require.ErrorIs(t, err, ErrValidation)

	item, err := store.CartItemByProduct(ctx, user.ID, p.ID)
	require.NoError(t, err)
	require.EqualValues(t, 60, item.Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := newTestStore(t)

	user := seedUser(t, store, "buyer")

	_, err := NewCartService(store).AddItem(context.Background(), user.ID, 999, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetCartShowsCurrentPrices(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "buyer")
	p := seedProduct(t, store, "P", "10.00")

	svc := NewCartService(store)
	_, err := svc.AddItem(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)

	// The cart is pre-purchase: a price change shows up immediately.
	p.Price = decimal.RequireFromString("12.00")
	require.NoError(t, store.DB.Save(p).Error)

	lines, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, p.ID, lines[0].Product.ID)
	require.True(t, lines[0].Product.Price.Equal(decimal.RequireFromString("12.00")))
	require.EqualValues(t, 2, lines[0].Item.Quantity)
}

func TestRemoveOneDecrementsThenDeletes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := seedUser(t, store, "buyer")
	p := seedProduct(t, store, "P", "10.00")

	svc := NewCartService(store)
	added, err := svc.AddItem(ctx, user.ID, p.ID, 2)
	require.NoError(t, err)

	item, deleted, err := svc.RemoveOne(ctx, user.ID, added.ID)
	require.NoError(t, err)
	require.False(t, deleted)
	require.EqualValues(t, 1, item.Quantity)

	_, deleted, err = svc.RemoveOne(ctx, user.ID, added.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	require.EqualValues(t, 0, countCartItems(t, store, user.ID))
}

func TestRemoveItemScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, store, "owner")
	other := seedUser(t, store, "other")
	p := seedProduct(t, store, "P", "10.00")

	svc := NewCartService(store)
	added, err := svc.AddItem(ctx, owner.ID, p.ID, 1)
	require.NoError(t, err)

	// Another user cannot touch the row.
	err = svc.RemoveItem(ctx, other.ID, added.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.RemoveItem(ctx, owner.ID, added.ID))
	require.EqualValues(t, 0, countCartItems(t, store, owner.ID))
}
