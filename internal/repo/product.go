package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductScoped narrows the lookup to one vendor's products when
// vendorID is set. uuid.Nil means unscoped.
func (r *GormRepo) GetProductScoped(ctx context.Context, id, vendorID uuid.UUID) (*models.Product, error) {
	q := r.DB.WithContext(ctx).Where("id = ?", id)
	if vendorID != uuid.Nil {
		q = q.Where("vendor_id = ?", vendorID)
	}

	product := models.Product{}
	if err := q.First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) GetProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Order("created_at DESC")
	if vendorID != uuid.Nil {
		q = q.Where("vendor_id = ?", vendorID)
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) DeleteProductScoped(ctx context.Context, id, vendorID uuid.UUID) error {
	q := r.DB.WithContext(ctx).Where("id = ?", id)
	if vendorID != uuid.Nil {
		q = q.Where("vendor_id = ?", vendorID)
	}

	res := q.Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock subtracts n conditionally so stock never goes negative
// under concurrent confirmations.
func (r *GormRepo) DecrementStock(ctx context.Context, id uuid.UUID, n uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, n).
		Update("quantity", gorm.Expr("quantity - ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertRating records one user's vote and recomputes the product's
// average inside a single transaction.
func (r *GormRepo) UpsertRating(ctx context.Context, productID, userID uuid.UUID, value float64) (*models.Product, error) {
	var product models.Product

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}

		var rating models.Rating
		err := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&rating).Error
		switch {
		case err == nil:
			rating.Value = value
			if err := tx.Save(&rating).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = models.Rating{ProductID: productID, UserID: userID, Value: value}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var avg float64
		if err := tx.Model(&models.Rating{}).
			Where("product_id = ?", productID).
			Select("AVG(value)").Scan(&avg).Error; err != nil {
			return err
		}

		product.Rating = avg
		return tx.Model(&product).Update("rating", avg).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}
