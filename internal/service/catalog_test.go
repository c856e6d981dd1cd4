package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateProduct_UpsertsAndAverages(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()
	product := seedProduct(t, r, 10, 5)
	alice := seedUser(t, r)
	bob := seedUser(t, r)

	got, err := svc.RateProduct(ctx, alice.ID, product.ID, 4)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.Rating, 1e-9)

	got, err = svc.RateProduct(ctx, bob.ID, product.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.Rating, 1e-9)

	// Re-rating replaces the vote instead of adding another.
	got, err = svc.RateProduct(ctx, alice.ID, product.ID, 5)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, got.Rating, 1e-9)
}

func TestRateProduct_Bounds(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()
	product := seedProduct(t, r, 10, 5)
	user := seedUser(t, r)

	for _, value := range []float64{0, 0.5, 5.5, -1} {
		_, err := svc.RateProduct(ctx, user.ID, product.ID, value)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestRateProduct_UnknownProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	user := seedUser(t, r)

	_, err := svc.RateProduct(context.Background(), user.ID, uuid.New(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProducts_Pagination(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		seedProduct(t, r, float64(i+1), 1)
	}

	total, page, err := svc.GetProducts(ctx, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, page, 5)

	total, rest, err := svc.GetProducts(ctx, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, rest, 2)
}
