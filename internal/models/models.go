package models

import (
	"time"
)

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string   `gorm:"not null"                  json:"name"`
	Description string   `gorm:"not null"                  json:"description"`
	Price       float64  `gorm:"not null;check:price >= 0" json:"price"`
	Category    string   `gorm:"index;not null"            json:"category"`
	Image       string   `json:"image"`
	Sizes       []string `gorm:"serializer:json"           json:"sizes,omitempty"`
	Colors      []string `gorm:"serializer:json"           json:"colors,omitempty"`
	Stock       int      `gorm:"not null;check:stock >= 0" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type ShippingAddress struct {
	FirstName  string `gorm:"not null" json:"firstName"`
	LastName   string `gorm:"not null" json:"lastName"`
	Address    string `gorm:"not null" json:"address"`
	City       string `gorm:"not null" json:"city"`
	Country    string `gorm:"not null" json:"country"`
	PostalCode string `gorm:"not null" json:"postalCode"`
	Email      string `gorm:"not null" json:"email"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey"     json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `gorm:"not null;check:total_amount >= 0" json:"total_amount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Status          OrderStatus     `gorm:"index;not null;default:pending"  json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"index;not null;default:pending"  json:"payment_status"`
	PaymentMethod   string          `gorm:"not null"       json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots the unit price at checkout; later catalog edits must
// not change stored orders.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey"                  json:"id"`
	OrderID       uint    `gorm:"index;not null"              json:"order_id"`
	ProductID     uint    `gorm:"not null"                    json:"product_id"`
	Quantity      int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price         float64 `gorm:"not null;check:price >= 0"   json:"price"`
	SelectedSize  string  `json:"selected_size,omitempty"`
	SelectedColor string  `json:"selected_color,omitempty"`
}

type Return struct {
	ID             uint         `gorm:"primaryKey"     json:"id"`
	UserID         uint         `gorm:"index;not null" json:"user_id"`
	Items          []ReturnItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Status         ReturnStatus `gorm:"index;not null;default:pending" json:"status"`
	ShippingMethod string       `gorm:"not null"       json:"shipping_method"`
	ReturnLabel    string       `json:"return_label,omitempty"`
	ApprovedAt     *time.Time   `json:"approved_at,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ReturnItem carries a denormalized copy of the ordered product so the
// return survives catalog edits.
type ReturnItem struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	ReturnID  uint    `gorm:"index;not null" json:"return_id"`
	ProductID uint    `gorm:"not null"       json:"product_id"`
	Name      string  `gorm:"not null"       json:"name"`
	Size      string  `gorm:"not null"       json:"size"`
	Price     float64 `gorm:"not null"       json:"price"`
	Reason    string  `gorm:"not null"       json:"reason"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey"                        json:"id"`
	ProductID uint      `gorm:"index:idx_review_user_product,unique;not null" json:"product_id"`
	UserID    uint      `gorm:"index:idx_review_user_product,unique;not null" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        uint      `gorm:"primaryKey"            json:"id"`
	Name      string    `gorm:"not null"              json:"name"`
	Email     string    `gorm:"not null"              json:"email"`
	Subject   string    `gorm:"not null"              json:"subject"`
	Message   string    `gorm:"not null"              json:"message"`
	Status    string    `gorm:"not null;default:new"  json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
