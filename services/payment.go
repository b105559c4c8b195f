package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/gateway"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentResult struct {
	OrderID         string  `json:"order_id"`
	ProviderOrderID string  `json:"provider_order_id"`
	Status          string  `json:"status"`
	Amount          float64 `json:"amount"`
}

// CreatePaymentIntent asks the gateway for a provider order covering the
// order total and records the Payment row for it. The order keeps exactly
// one Payment; re-running placement for the same order is not expected.
func CreatePaymentIntent(ctx context.Context, db *gorm.DB, gw gateway.PaymentGateway, order *models.Order) (string, error) {
	amountMinor := int64(math.Round(order.Total * 100))
	providerOrderID, err := gw.CreateIntent(ctx, order.ID, amountMinor, "INR")
	if err != nil {
		return "", apperrors.BadRequest("failed to create payment order: " + err.Error())
	}

	payment := models.Payment{
		ID:              uuid.NewString(),
		OrderID:         order.ID,
		Provider:        "razorpay",
		ProviderOrderID: providerOrderID,
		// Until capture the provider order id doubles as the payment id so
		// webhook lookups have something to match on.
		ProviderPaymentID: providerOrderID,
		Status:            models.PaymentStatusCreated,
		Amount:            order.Total,
		CreatedAt:         time.Now(),
	}
	if err := db.WithContext(ctx).Create(&payment).Error; err != nil {
		return "", apperrors.Internal("failed to record payment: " + err.Error())
	}
	return providerOrderID, nil
}

// VerifyPayment handles the synchronous confirmation callback. It is
// idempotent: repeated calls with the same valid arguments re-apply the same
// terminal values.
func VerifyPayment(ctx context.Context, db *gorm.DB, gw gateway.PaymentGateway, providerOrderID, providerPaymentID, signature string) (*PaymentResult, error) {
	if !gw.VerifySignature(providerOrderID, providerPaymentID, signature) {
		return nil, apperrors.Unauthorized("invalid payment signature")
	}

	var payment models.Payment
	if err := db.WithContext(ctx).Where("provider_order_id = ?", providerOrderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found for order")
		}
		return nil, apperrors.Internal(err.Error())
	}

	payment.ProviderPaymentID = providerPaymentID
	payment.ProviderSignature = signature
	payment.Status = models.PaymentStatusPaid
	if err := db.WithContext(ctx).Save(&payment).Error; err != nil {
		return nil, apperrors.Internal("failed to update payment: " + err.Error())
	}

	var order models.Order
	if err := db.WithContext(ctx).First(&order, "id = ?", payment.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err.Error())
	}
	order.Status = models.OrderStatusPaid
	order.PaymentID = payment.ProviderPaymentID
	if err := db.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, apperrors.Internal("failed to update order: " + err.Error())
	}

	return &PaymentResult{
		OrderID:         order.ID,
		ProviderOrderID: payment.ProviderOrderID,
		Status:          payment.Status,
		Amount:          payment.Amount,
	}, nil
}

// ApplyWebhook handles the asynchronous confirmation path. It may arrive
// before, after, or duplicated relative to VerifyPayment; both apply the same
// terminal values, so ordering between them does not matter.
func ApplyWebhook(ctx context.Context, db *gorm.DB, providerPaymentID, status string) (*PaymentResult, error) {
	var payment models.Payment
	err := db.WithContext(ctx).Where("provider_payment_id = ?", providerPaymentID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Before capture only the provider order id is known.
		err = db.WithContext(ctx).Where("provider_order_id = ?", providerPaymentID).First(&payment).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found")
		}
		return nil, apperrors.Internal(err.Error())
	}

	payment.Status = status
	if err := db.WithContext(ctx).Save(&payment).Error; err != nil {
		return nil, apperrors.Internal("failed to update payment: " + err.Error())
	}

	var order models.Order
	if err := db.WithContext(ctx).First(&order, "id = ?", payment.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err.Error())
	}
	switch {
	case strings.EqualFold(status, models.PaymentStatusPaid):
		order.Status = models.OrderStatusPaid
	case strings.EqualFold(status, models.PaymentStatusFailed):
		order.Status = models.OrderStatusCancelled
	}
	if err := db.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, apperrors.Internal("failed to update order: " + err.Error())
	}

	return &PaymentResult{
		OrderID:         order.ID,
		ProviderOrderID: payment.ProviderOrderID,
		Status:          status,
		Amount:          payment.Amount,
	}, nil
}
