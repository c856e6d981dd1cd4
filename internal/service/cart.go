package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID) ([]models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return nil, err
	}

	if err := s.Repo.AddToCart(ctx, userID, productID); err != nil {
		return nil, err
	}

	return s.Repo.GetCart(ctx, userID)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID, removeAll bool) ([]models.CartItem, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id required: %w", ErrValidation)
	}

	if err := s.Repo.RemoveFromCart(ctx, userID, productID, removeAll); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product not found in cart: %w", ErrNotFound)
		}
		return nil, err
	}

	return s.Repo.GetCart(ctx, userID)
}
