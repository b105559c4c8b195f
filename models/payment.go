package models

import "time"

const (
	PaymentStatusCreated = "CREATED"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// Payment tracks the gateway-side intent for exactly one order.
type Payment struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	OrderID           string    `gorm:"uniqueIndex;not null" json:"order_id"`
	Provider          string    `json:"provider"`
	ProviderOrderID   string    `gorm:"index" json:"provider_order_id"`
	ProviderPaymentID string    `gorm:"index" json:"provider_payment_id"`
	ProviderSignature string    `json:"-"`
	Status            string    `gorm:"type:VARCHAR(20)" json:"status"`
	Amount            float64   `json:"amount"`
	CreatedAt         time.Time `json:"created_at"`
}
