package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("payment_id = ?", paymentID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListPendingOrders returns the user's unpaid orders with their line
// items, for checkout deduplication.
func (r *GormRepo) ListPendingOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ? AND payment_status = ?", userID, models.PaymentPending).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListUserOrders(ctx context.Context, userID uuid.UUID, offset, limit int, ascending bool) (int64, []models.Order, error) {
	base := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	direction := "updated_at DESC"
	if ascending {
		direction = "updated_at ASC"
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order(direction).Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// ListOrders returns every order, or only confirmed-undelivered ones
// when dispatchable is set (the dispatcher's work queue).
func (r *GormRepo) ListOrders(ctx context.Context, dispatchable bool) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Preload("Items").Order("updated_at DESC")
	if dispatchable {
		q = q.Where("payment_status = ? AND delivery_status = ?",
			models.PaymentConfirmed, models.DeliveryPending)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) UpdateOrderPaymentID(ctx context.Context, orderID uuid.UUID, paymentID string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{"payment_id": paymentID, "updated_at": time.Now().UTC()}).Error
}

func (r *GormRepo) UpdateOrderPaymentStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status).Error
}

// ConfirmOrderPayment flips Pending to Confirmed conditionally, so two
// concurrent callbacks cannot both win. Reports whether this call made
// the transition.
func (r *GormRepo) ConfirmOrderPayment(ctx context.Context, orderID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, models.PaymentPending).
		Update("payment_status", models.PaymentConfirmed)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) UpdateOrderDeliveryStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("delivery_status", status).Error
}

func (r *GormRepo) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", orderID).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
