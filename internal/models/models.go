package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending   = "Pending"
	PaymentConfirmed = "Confirmed"

	DeliveryPending   = "Pending"
	DeliveryDelivered = "Delivered"
)

const (
	RoleSuperAdmin = "Super-admin"
	RoleAdmin      = "Admin"
	RoleVendor     = "Vendor"
	RoleDispatcher = "Dispatcher"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"        json:"id"`
	Name        string    `gorm:"not null"                    json:"name"`
	Description string    `gorm:"not null"                    json:"description"`
	Cost        float64   `gorm:"not null"                    json:"cost"`
	ImageURL    string    `gorm:"not null"                    json:"imageUrl"`
	Quantity    uint      `gorm:"not null;default:0"          json:"quantity"`
	Rating      float64   `gorm:"default:0"                   json:"rating"`
	Ratings     []Rating  `gorm:"constraint:OnDelete:CASCADE" json:"ratings,omitempty"`
	VendorID    uuid.UUID `gorm:"type:uuid;index"             json:"vendor_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Rating is one user's vote for a product, at most one row per user.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                         json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uix_rating_owner" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:uix_rating_owner"       json:"user_id"`
	Value     float64   `gorm:"not null"                                     json:"value"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"        json:"id"`
	FirstName    string     `gorm:"not null"                    json:"firstName"`
	LastName     string     `gorm:"not null"                    json:"lastName"`
	Email        string     `gorm:"unique;not null"             json:"email"`
	PasswordHash string     `gorm:"not null"                    json:"-"`
	Address      string     `gorm:"not null"                    json:"address"`
	Occupation   *string    `json:"occupation"`
	Cart         []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"cart"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                      json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uix_cart_line" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:uix_cart_line"       json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                json:"quantity"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Order items are a snapshot taken at checkout. Product edits after the
// fact never change a placed order's lines.
type Order struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"        json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;index;not null"    json:"user_id"`
	Items          []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"products"`
	PaymentID      string      `gorm:"index;not null"              json:"payment_id"`
	PaymentStatus  string      `gorm:"not null"                    json:"payment_status"`
	TotalCost      float64     `gorm:"not null"                    json:"total_cost"`
	Address        string      `gorm:"not null"                    json:"address"`
	DeliveryStatus string      `gorm:"not null"                    json:"delivery_status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"   json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"         json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0" json:"quantity"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null"             json:"name"`
	Email        string    `gorm:"unique;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Role         string    `gorm:"not null"             json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
