package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
	"github.com/gobazaar/backend/internal/transport"
)

// OrderService is the customer-facing read side.
type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID, offset, limit int, ascending bool) (int64, []transport.OrderView, error) {
	total, orders, err := s.Repo.ListUserOrders(ctx, userID, offset, limit, ascending)
	if err != nil {
		return 0, nil, err
	}

	views, err := hydrateOrders(ctx, s.Repo, orders)
	if err != nil {
		return 0, nil, err
	}
	return total, views, nil
}

// GetOrder surfaces both a missing order and someone else's order as
// NotFound, so callers cannot probe for existence.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*transport.OrderView, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if order.UserID != userID {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}

	views, err := hydrateOrders(ctx, s.Repo, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// hydrateOrders attaches live product data to each snapshot line with a
// single batched lookup. Lines whose product is gone keep id+quantity
// and carry a nil product.
func hydrateOrders(ctx context.Context, r *repo.GormRepo, orders []models.Order) ([]transport.OrderView, error) {
	idSet := make(map[uuid.UUID]struct{})
	for i := range orders {
		for _, item := range orders[i].Items {
			idSet[item.ProductID] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var products map[uuid.UUID]models.Product
	if len(ids) > 0 {
		var err error
		products, err = r.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]transport.OrderView, len(orders))
	for i := range orders {
		order := &orders[i]
		lines := make([]transport.OrderLine, len(order.Items))
		for j, item := range order.Items {
			line := transport.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
			if p, ok := products[item.ProductID]; ok {
				p.Ratings = nil
				line.Product = &p
			}
			lines[j] = line
		}

		views[i] = transport.OrderView{
			ID:             order.ID,
			UserID:         order.UserID,
			Products:       lines,
			PaymentID:      order.PaymentID,
			PaymentStatus:  order.PaymentStatus,
			TotalCost:      order.TotalCost,
			Address:        order.Address,
			DeliveryStatus: order.DeliveryStatus,
			CreatedAt:      order.CreatedAt,
			UpdatedAt:      order.UpdatedAt,
		}
	}
	return views, nil
}
