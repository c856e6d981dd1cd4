package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments an existing line by one or appends a fresh line
// with quantity one.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  1,
		}
		return tx.Create(&item).Error
	})
}

// RemoveFromCart drops the line entirely when removeAll is set or the
// quantity is already one, otherwise decrements by one. Returns
// gorm.ErrRecordNotFound when the product is not in the cart.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID, removeAll bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		if err := tx.Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error; err != nil {
			return err
		}

		if !removeAll && item.Quantity > 1 {
			return tx.Model(&item).Update("quantity", gorm.Expr("quantity - 1")).Error
		}
		return tx.Delete(&item).Error
	})
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
