package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/gobazaar/backend/internal/models"
)

type RegisterRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Address    string  `json:"address"`
	Occupation *string `json:"occupation"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CartMutationRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Single    bool      `json:"single"`
}

type RateProductRequest struct {
	Value float64 `json:"value"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	ImageURL    string  `json:"imageUrl"`
	Quantity    uint    `json:"quantity"`
}

type PatchProductRequest struct {
	ID          uuid.UUID `json:"id"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Cost        *float64  `json:"cost"`
	ImageURL    *string   `json:"imageUrl"`
	Quantity    *uint     `json:"quantity"`
}

type UpdateOrderRequest struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
}

// OrderLine is an order item re-hydrated for display. The snapshot is
// authoritative for product id and quantity only; the embedded product
// is fetched fresh and is nil when it no longer exists.
type OrderLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Product   *models.Product `json:"product"`
	Quantity  uint            `json:"quantity"`
}

type OrderView struct {
	ID             uuid.UUID   `json:"id"`
	UserID         uuid.UUID   `json:"user_id"`
	Products       []OrderLine `json:"products"`
	PaymentID      string      `json:"payment_id"`
	PaymentStatus  string      `json:"payment_status"`
	TotalCost      float64     `json:"total_cost"`
	Address        string      `json:"address"`
	DeliveryStatus string      `json:"delivery_status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}
