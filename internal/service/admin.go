package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/events"
	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
	"github.com/gobazaar/backend/internal/search"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/pkg/logging"
)

// Staff is the authenticated admin-panel principal.
type Staff struct {
	ID   uuid.UUID
	Role string
}

// vendorScope returns the vendor filter for a staff member: vendors see
// only their own products, everyone else is unscoped.
func (s Staff) vendorScope() uuid.UUID {
	if s.Role == models.RoleVendor {
		return s.ID
	}
	return uuid.Nil
}

type AdminService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	Indexer  *search.Indexer
}

func (s *AdminService) ListOrders(ctx context.Context, staff Staff) ([]transport.OrderView, error) {
	// Dispatchers only see their work queue: paid orders awaiting delivery.
	orders, err := s.Repo.ListOrders(ctx, staff.Role == models.RoleDispatcher)
	if err != nil {
		return nil, err
	}
	return hydrateOrders(ctx, s.Repo, orders)
}

func (s *AdminService) GetOrder(ctx context.Context, staff Staff, orderID uuid.UUID) (*transport.OrderView, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if staff.Role == models.RoleDispatcher &&
		(order.PaymentStatus != models.PaymentConfirmed || order.DeliveryStatus != models.DeliveryPending) {
		return nil, fmt.Errorf("order not found: %w", ErrNotFound)
	}

	views, err := hydrateOrders(ctx, s.Repo, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateDeliveryStatus moves a paid order to Delivered. Unpaid orders
// are rejected for every role, and Delivered is the only transition.
func (s *AdminService) UpdateDeliveryStatus(ctx context.Context, staff Staff, orderID uuid.UUID, status string) error {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return err
	}

	if order.PaymentStatus != models.PaymentConfirmed {
		return fmt.Errorf("%w", ErrPendingPayment)
	}
	if status != models.DeliveryDelivered {
		return fmt.Errorf("invalid status %q: %w", status, ErrValidation)
	}

	if err := s.Repo.UpdateOrderDeliveryStatus(ctx, orderID, status); err != nil {
		return err
	}

	if err := s.Producer.PublishEvent(ctx, staff.ID.String(), map[string]any{
		"type":    "order_delivered",
		"orderID": orderID,
		"adminID": staff.ID,
	}); err != nil {
		logging.FromContext(ctx).Warn("publish order_delivered failed", "error", err)
	}
	return nil
}

func (s *AdminService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.Repo.DeleteOrder(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("order not found: %w", ErrNotFound)
		}
		return err
	}
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, staff Staff, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Description == "" || req.ImageURL == "" {
		return nil, fmt.Errorf("name, description and imageUrl required: %w", ErrValidation)
	}
	if req.Cost < 0 {
		return nil, fmt.Errorf("cost must be >= 0: %w", ErrValidation)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		ImageURL:    req.ImageURL,
		Quantity:    req.Quantity,
		VendorID:    staff.ID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.afterProductWrite(ctx, staff, product, "product_created")
	return product, nil
}

func (s *AdminService) PatchProduct(ctx context.Context, staff Staff, req transport.PatchProductRequest) (*models.Product, error) {
	if req.ID == uuid.Nil {
		return nil, fmt.Errorf("id required: %w", ErrValidation)
	}
	if req.Cost != nil && *req.Cost < 0 {
		return nil, fmt.Errorf("cost must be >= 0: %w", ErrValidation)
	}

	product, err := s.Repo.GetProductScoped(ctx, req.ID, staff.vendorScope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Cost != nil {
		product.Cost = *req.Cost
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.afterProductWrite(ctx, staff, product, "product_updated")
	return product, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, staff Staff, productID uuid.UUID) error {
	if err := s.Repo.DeleteProductScoped(ctx, productID, staff.vendorScope()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}

	l := logging.FromContext(ctx)
	if err := s.Indexer.DeleteProduct(ctx, productID.String()); err != nil {
		l.Warn("search index delete failed", "product_id", productID, "error", err)
	}
	if err := s.Producer.PublishEvent(ctx, staff.ID.String(), map[string]any{
		"type":      "product_deleted",
		"productID": productID,
		"adminID":   staff.ID,
	}); err != nil {
		l.Warn("publish product_deleted failed", "error", err)
	}
	return nil
}

func (s *AdminService) ListProducts(ctx context.Context, staff Staff) ([]models.Product, error) {
	return s.Repo.GetProductsByVendor(ctx, staff.vendorScope())
}

func (s *AdminService) GetProduct(ctx context.Context, staff Staff, productID uuid.UUID) (*models.Product, error) {
	product, err := s.Repo.GetProductScoped(ctx, productID, staff.vendorScope())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *AdminService) afterProductWrite(ctx context.Context, staff Staff, product *models.Product, eventType string) {
	l := logging.FromContext(ctx)
	if err := s.Indexer.IndexProduct(ctx, product); err != nil {
		l.Warn("search index update failed", "product_id", product.ID, "error", err)
	}
	if err := s.Producer.PublishEvent(ctx, staff.ID.String(), map[string]any{
		"type":      eventType,
		"productID": product.ID,
		"name":      product.Name,
		"adminID":   staff.ID,
	}); err != nil {
		l.Warn("publish "+eventType+" failed", "error", err)
	}
}
