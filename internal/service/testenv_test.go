package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gobazaar/backend/internal/gateway"
	"github.com/gobazaar/backend/internal/models"
	"github.com/gobazaar/backend/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	// One private in-memory database per test. cache=shared keeps the
	// schema alive across the pool's connections.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Rating{},
		&models.User{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &repo.GormRepo{DB: db}
}

func seedUser(t *testing.T, r *repo.GormRepo) *models.User {
	t.Helper()

	user := &models.User{
		FirstName:    "Asha",
		LastName:     "Rao",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Address:      "14 MG Road, Bengaluru",
	}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, r *repo.GormRepo, cost float64, stock uint) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        "product-" + uuid.NewString()[:8],
		Description: "test product",
		Cost:        cost,
		ImageURL:    "https://cdn.example.com/p.png",
		Quantity:    stock,
	}
	require.NoError(t, r.CreateProduct(context.Background(), product))
	return product
}

// fakeGateway hands out deterministic intent references and counts how
// often it was asked.
type fakeGateway struct {
	calls int
	fail  bool
}

func (f *fakeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*gateway.Intent, error) {
	f.calls++
	if f.fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	return &gateway.Intent{
		ID:        fmt.Sprintf("order_test_%d", f.calls),
		Entity:    "order",
		Amount:    amountMinor,
		AmountDue: amountMinor,
		Currency:  currency,
		Status:    "created",
	}, nil
}
