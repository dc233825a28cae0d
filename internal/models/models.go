package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role is the closed set of permission tags attached to an identity.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// OrderStatus values an order can move through. Pending is the initial
// state, Shipped is applied by an admin.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// MaxCartQuantity bounds a single cart line.
const MaxCartQuantity = 100

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null"                 json:"role"`
}

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name        string          `gorm:"not null"                    json:"name"`
	Description string          `gorm:"not null"                    json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(18,2)" json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      Role   `gorm:"not null"        json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// CartItem is one (user, product) row; at most one row per pair.
type CartItem struct {
	ID        uint `gorm:"primaryKey"                                 json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  uint `gorm:"not null;check:quantity>0"                  json:"quantity"`
}

// Order is immutable after checkout except for Status. Items live and die
// with their order.
type Order struct {
	ID          uint            `gorm:"primaryKey"                  json:"id"`
	UserID      uint            `gorm:"index;not null"              json:"user_id"`
	CreatedAt   time.Time       `gorm:"not null"                    json:"created_at"`
	TotalAmount decimal.Decimal `gorm:"not null;type:decimal(18,2)" json:"total_amount"`
	Status      OrderStatus     `gorm:"not null"                    json:"status"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem carries the name and price snapshot taken at checkout time.
// ProductID is kept for traceability only and is never used to re-derive
// the snapshot fields.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"                  json:"id"`
	OrderID     uint            `gorm:"index;not null"              json:"order_id"`
	ProductID   uint            `gorm:"not null"                    json:"product_id"`
	ProductName string          `gorm:"not null"                    json:"product_name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(18,2)" json:"price"`
	Quantity    uint            `gorm:"not null"                    json:"quantity"`
}
