package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/events"
	"github.com/gobazaar/backend/internal/gateway"
	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
	"github.com/gobazaar/backend/pkg/logging"
)

// CheckoutService turns a product, a cart or an existing unpaid order
// into a gateway intent, reusing the caller's matching pending order
// instead of stacking duplicates.
type CheckoutService struct {
	Repo     *repo.GormRepo
	Gateway  gateway.Client
	Producer *events.Producer
	Currency string
}

func minorUnits(cost float64) int64 {
	return int64(math.Round(cost * 100))
}

func (s *CheckoutService) CheckoutProduct(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*gateway.Intent, error) {
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if product.Quantity < quantity {
		return nil, fmt.Errorf("product out of stock: %w", ErrOutOfStock)
	}

	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}

	total := product.Cost * float64(quantity)
	intent, err := s.Gateway.CreateIntent(ctx, minorUnits(total), s.Currency)
	if err != nil {
		return nil, err
	}

	items := []models.OrderItem{{ProductID: productID, Quantity: quantity}}
	if err := s.placeOrReuse(ctx, user, items, intent.ID, total); err != nil {
		return nil, err
	}

	return intent, nil
}

func (s *CheckoutService) CheckoutCart(ctx context.Context, userID uuid.UUID) (*gateway.Intent, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if len(user.Cart) == 0 {
		return nil, fmt.Errorf("%w", ErrEmptyCart)
	}

	ids := make([]uuid.UUID, 0, len(user.Cart))
	for _, line := range user.Cart {
		ids = append(ids, line.ProductID)
	}
	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Stock is validated against current product quantity, nothing is
	// reserved before confirmation.
	var total float64
	items := make([]models.OrderItem, 0, len(user.Cart))
	for _, line := range user.Cart {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		if product.Quantity < line.Quantity {
			return nil, fmt.Errorf("product %s out of stock: %w", product.Name, ErrOutOfStock)
		}
		total += product.Cost * float64(line.Quantity)
		items = append(items, models.OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	intent, err := s.Gateway.CreateIntent(ctx, minorUnits(total), s.Currency)
	if err != nil {
		return nil, err
	}

	if err := s.placeOrReuse(ctx, user, items, intent.ID, total); err != nil {
		return nil, err
	}

	// Cart contents moved into the pending order; the cart is cleared
	// even though payment is not confirmed yet.
	if err := s.Repo.ClearCart(ctx, userID); err != nil {
		return nil, err
	}

	return intent, nil
}

func (s *CheckoutService) CheckoutOrder(ctx context.Context, userID, orderID uuid.UUID) (*gateway.Intent, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if order.UserID != userID {
		return nil, fmt.Errorf("order belongs to another user: %w", ErrForbidden)
	}
	if order.PaymentStatus == models.PaymentConfirmed {
		return nil, fmt.Errorf("%w", ErrAlreadyConfirmed)
	}

	intent, err := s.Gateway.CreateIntent(ctx, minorUnits(order.TotalCost), s.Currency)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateOrderPaymentID(ctx, order.ID, intent.ID); err != nil {
		return nil, err
	}

	return intent, nil
}

// placeOrReuse enforces the idempotency rule: one pending order per
// (user, exact item multiset). An identical re-checkout only refreshes
// that order's payment reference. Lookup-before-insert, so concurrent
// identical checkouts can still race; see the dedup tests.
func (s *CheckoutService) placeOrReuse(ctx context.Context, user *models.User, items []models.OrderItem, paymentID string, total float64) error {
	pending, err := s.Repo.ListPendingOrders(ctx, user.ID)
	if err != nil {
		return err
	}

	for i := range pending {
		if sameItems(pending[i].Items, items) {
			return s.Repo.UpdateOrderPaymentID(ctx, pending[i].ID, paymentID)
		}
	}

	order := &models.Order{
		UserID:         user.ID,
		Items:          items,
		PaymentID:      paymentID,
		PaymentStatus:  models.PaymentPending,
		TotalCost:      total,
		Address:        user.Address,
		DeliveryStatus: models.DeliveryPending,
	}
	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		return err
	}

	if err := s.Producer.PublishEvent(ctx, user.ID.String(), map[string]any{
		"type":     "order_created",
		"orderID":  order.ID,
		"userID":   user.ID,
		"total":    total,
		"nb_items": len(items),
	}); err != nil {
		logging.FromContext(ctx).Warn("publish order_created failed", "error", err)
	}
	return nil
}

// sameItems compares the {productID, quantity} multisets, insertion
// order irrelevant. A single changed quantity means a different order.
func sameItems(a, b []models.OrderItem) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[uuid.UUID]uint, len(a))
	for _, item := range a {
		counts[item.ProductID] += item.Quantity
	}
	for _, item := range b {
		if counts[item.ProductID] < item.Quantity {
			return false
		}
		counts[item.ProductID] -= item.Quantity
		if counts[item.ProductID] == 0 {
			delete(counts, item.ProductID)
		}
	}
	return len(counts) == 0
}
