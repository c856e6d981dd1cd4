package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"gorm.io/gorm"

	"github.com/gobazaar/backend/internal/hash"
	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/pkg/tokens"
)

const sessionTTL = 7 * 24 * time.Hour

// RoleUser is the customer principal's role claim. Admin principals
// carry one of the models.Role* values instead.
const RoleUser = "user"

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.FirstName == "" || req.LastName == "" || req.Address == "" {
		return nil, fmt.Errorf("firstName, lastName and address required: %w", ErrValidation)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", ErrValidation)
	}

	if _, err := s.Repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Address:      req.Address,
		Occupation:   req.Occupation,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, time.Time, error) {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, fmt.Errorf("invalid credentials: %w", ErrForbidden)
		}
		return nil, "", time.Time{}, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, fmt.Errorf("invalid credentials: %w", ErrForbidden)
	}

	expiresAt := time.Now().UTC().Add(sessionTTL)
	token, err := tokens.NewAccessToken(s.JWTSecret, user.ID.String(), RoleUser, expiresAt)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*models.Admin, string, time.Time, error) {
	admin, err := s.Repo.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", time.Time{}, fmt.Errorf("invalid credentials: %w", ErrForbidden)
		}
		return nil, "", time.Time{}, err
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		return nil, "", time.Time{}, fmt.Errorf("invalid credentials: %w", ErrForbidden)
	}

	expiresAt := time.Now().UTC().Add(sessionTTL)
	token, err := tokens.NewAccessToken(s.JWTSecret, admin.ID.String(), admin.Role, expiresAt)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, expiresAt, nil
}
