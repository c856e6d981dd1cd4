package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/transport"
)

func strPtr(s string) *string { return &s }

func TestUpdateDeliveryStatus_UnpaidOrderRejected(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()
	user := seedUser(t, r)
	product := seedProduct(t, r, 10, 5)

	order := placeOrder(t, r, user.ID, []models.OrderItem{
		{ProductID: product.ID, Quantity: 1},
	}, models.PaymentPending)

	for _, role := range []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleDispatcher} {
		staff := Staff{ID: uuid.New(), Role: role}
		err := svc.UpdateDeliveryStatus(ctx, staff, order.ID, models.DeliveryDelivered)
		require.Error(t, err, role)
		assert.ErrorIs(t, err, ErrPendingPayment, role)
	}

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryPending, got.DeliveryStatus)
}

func TestUpdateDeliveryStatus_OnlyDeliveredAllowed(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()
	user := seedUser(t, r)
	product := seedProduct(t, r, 10, 5)

	order := placeOrder(t, r, user.ID, []models.OrderItem{
		{ProductID: product.ID, Quantity: 1},
	}, models.PaymentConfirmed)
	staff := Staff{ID: uuid.New(), Role: models.RoleDispatcher}

	err := svc.UpdateDeliveryStatus(ctx, staff, order.ID, "Shipped")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.UpdateDeliveryStatus(ctx, staff, order.ID, models.DeliveryDelivered))

	got, err := r.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryDelivered, got.DeliveryStatus)
}

func TestListOrders_DispatcherSeesOnlyWorkQueue(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()
	user := seedUser(t, r)
	product := seedProduct(t, r, 10, 5)

	unpaid := placeOrder(t, r, user.ID, []models.OrderItem{{ProductID: product.ID, Quantity: 1}}, models.PaymentPending)
	paid := placeOrder(t, r, user.ID, []models.OrderItem{{ProductID: product.ID, Quantity: 2}}, models.PaymentConfirmed)
	delivered := placeOrder(t, r, user.ID, []models.OrderItem{{ProductID: product.ID, Quantity: 3}}, models.PaymentConfirmed)
	require.NoError(t, r.UpdateOrderDeliveryStatus(ctx, delivered.ID, models.DeliveryDelivered))

	queue, err := svc.ListOrders(ctx, Staff{ID: uuid.New(), Role: models.RoleDispatcher})
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, paid.ID, queue[0].ID)

	all, err := svc.ListOrders(ctx, Staff{ID: uuid.New(), Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// A dispatcher reading an order outside the queue gets NotFound.
	_, err = svc.GetOrder(ctx, Staff{ID: uuid.New(), Role: models.RoleDispatcher}, unpaid.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrder_RemovesOrderAndLines(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()
	user := seedUser(t, r)
	product := seedProduct(t, r, 10, 5)

	order := placeOrder(t, r, user.ID, []models.OrderItem{{ProductID: product.ID, Quantity: 1}}, models.PaymentPending)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID))

	_, err := r.GetOrder(ctx, order.ID)
	require.Error(t, err)

	err = svc.DeleteOrder(ctx, order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProduct_StampsVendor(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()
	vendor := Staff{ID: uuid.New(), Role: models.RoleVendor}

	product, err := svc.CreateProduct(ctx, vendor, transport.CreateProductRequest{
		Name:        "Clay Teapot",
		Description: "Hand thrown, 600ml",
		Cost:        34.5,
		ImageURL:    "https://cdn.example.com/teapot.png",
		Quantity:    12,
	})
	require.NoError(t, err)
	assert.Equal(t, vendor.ID, product.VendorID)

	_, err = svc.CreateProduct(ctx, vendor, transport.CreateProductRequest{Name: "no description"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPatchProduct_VendorScoped(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	owner := Staff{ID: uuid.New(), Role: models.RoleVendor}
	other := Staff{ID: uuid.New(), Role: models.RoleVendor}
	admin := Staff{ID: uuid.New(), Role: models.RoleAdmin}

	product, err := svc.CreateProduct(ctx, owner, transport.CreateProductRequest{
		Name:        "Clay Teapot",
		Description: "Hand thrown, 600ml",
		Cost:        34.5,
		ImageURL:    "https://cdn.example.com/teapot.png",
		Quantity:    12,
	})
	require.NoError(t, err)

	// Another vendor cannot see or touch it.
	_, err = svc.PatchProduct(ctx, other, transport.PatchProductRequest{
		ID:   product.ID,
		Name: strPtr("hijacked"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteProduct(ctx, other, product.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	// The owner and the unscoped admin both can.
	updated, err := svc.PatchProduct(ctx, owner, transport.PatchProductRequest{
		ID:   product.ID,
		Name: strPtr("Stoneware Teapot"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Stoneware Teapot", updated.Name)
	assert.Equal(t, "Hand thrown, 600ml", updated.Description)

	require.NoError(t, svc.DeleteProduct(ctx, admin, product.ID))
}

func TestListProducts_VendorScoped(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &AdminService{Repo: r}
	ctx := context.Background()

	owner := Staff{ID: uuid.New(), Role: models.RoleVendor}
	other := Staff{ID: uuid.New(), Role: models.RoleVendor}

	for i := 0; i < 2; i++ {
		_, err := svc.CreateProduct(ctx, owner, transport.CreateProductRequest{
			Name:        "P",
			Description: "D",
			Cost:        1,
			ImageURL:    "https://cdn.example.com/p.png",
		})
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, other, transport.CreateProductRequest{
		Name:        "Q",
		Description: "D",
		Cost:        1,
		ImageURL:    "https://cdn.example.com/q.png",
	})
	require.NoError(t, err)

	mine, err := svc.ListProducts(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := svc.ListProducts(ctx, Staff{ID: uuid.New(), Role: models.RoleSuperAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
