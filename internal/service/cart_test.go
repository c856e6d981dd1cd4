package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobazaar/backend/internal/models"
)

func cartEnv(t *testing.T) (*CartService, *models.User, *models.Product) {
	t.Helper()

	r := newTestRepo(t)
	return &CartService{Repo: r}, seedUser(t, r), seedProduct(t, r, 25, 10)
}

func TestAddToCart_NewLineThenIncrement(t *testing.T) {
	t.Parallel()

	svc, user, product := cartEnv(t)
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, uint(1), cart[0].Quantity)

	cart, err = svc.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, uint(2), cart[0].Quantity)
	assert.Equal(t, product.ID, cart[0].ProductID)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	t.Parallel()

	svc, user, _ := cartEnv(t)

	_, err := svc.AddToCart(context.Background(), user.ID, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFromCart_SingleDecrements(t *testing.T) {
	t.Parallel()

	svc, user, product := cartEnv(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)

	cart, err := svc.RemoveFromCart(ctx, user.ID, product.ID, false)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, uint(1), cart[0].Quantity)
}

func TestRemoveFromCart_LastUnitRemovesLine(t *testing.T) {
	t.Parallel()

	svc, user, product := cartEnv(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, user.ID, product.ID)
	require.NoError(t, err)

	cart, err := svc.RemoveFromCart(ctx, user.ID, product.ID, false)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestRemoveFromCart_RemoveAllDropsWholeLine(t *testing.T) {
	t.Parallel()

	svc, user, product := cartEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.AddToCart(ctx, user.ID, product.ID)
		require.NoError(t, err)
	}

	cart, err := svc.RemoveFromCart(ctx, user.ID, product.ID, true)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestRemoveFromCart_NotInCart(t *testing.T) {
	t.Parallel()

	svc, user, product := cartEnv(t)

	_, err := svc.RemoveFromCart(context.Background(), user.ID, product.ID, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
