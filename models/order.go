package models

import "time"

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"   // order placed, payment pending
	OrderStatusPaid      OrderStatus = "PAID"      // payment captured
	OrderStatusCancelled OrderStatus = "CANCELLED" // payment failed or manually voided
)

type Order struct {
	ID            string      `gorm:"primaryKey" json:"id"`
	UserID        string      `gorm:"index;not null" json:"user_id"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total         float64     `json:"total"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'CREATED'" json:"status"`
	PaymentMethod string      `json:"payment_method"`
	PaymentID     string      `json:"payment_id"` // provider reference, display only
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem is a snapshot of the product at placement time; later price
// changes never touch it.
type OrderItem struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"index" json:"-"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
