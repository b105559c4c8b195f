package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/gateway"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/Shaikh-Suja-Rahaman/webwares/notify"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reservation struct {
	productID string
	quantity  int
}

// restoreReservations compensates the reservations made so far, newest first.
func restoreReservations(ctx context.Context, db *gorm.DB, reserved []reservation) {
	for i := len(reserved) - 1; i >= 0; i-- {
		if err := Restore(ctx, db, reserved[i].productID, reserved[i].quantity); err != nil {
			log.Printf("❌ Failed to restore stock for product %s: %v", reserved[i].productID, err)
		}
	}
}

// PlaceOrder turns the user's cart into an order:
//
//	reserve stock per line (restoring everything reserved so far if any line
//	fails) → snapshot items and persist the order as CREATED → create the
//	payment intent → clear the cart → best-effort email.
//
// A failed intent leaves the order CREATED with no payment reference; stock
// stays reserved and the order is retryable. The email is never allowed to
// fail the placement.
func PlaceOrder(ctx context.Context, db *gorm.DB, gw gateway.PaymentGateway, mailer notify.Notifier, userID, email, paymentMethod string) (*models.Order, error) {
	cart, err := findOrMigrateCart(ctx, db, userID, email)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.BadRequest("cart is empty")
	}

	var (
		reserved   []reservation
		orderItems []models.OrderItem
		total      float64
	)
	for _, item := range cart.Items {
		var product models.Product
		if err := db.WithContext(ctx).First(&product, "id = ?", item.ProductID).Error; err != nil {
			restoreReservations(ctx, db, reserved)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("product not found")
			}
			return nil, apperrors.Internal(err.Error())
		}
		if err := Reserve(ctx, db, item.ProductID, item.Quantity); err != nil {
			restoreReservations(ctx, db, reserved)
			return nil, err
		}
		reserved = append(reserved, reservation{productID: item.ProductID, quantity: item.Quantity})

		orderItems = append(orderItems, models.OrderItem{
			ID:        uuid.NewString(),
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := models.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Items:         orderItems,
		Total:         total,
		Status:        models.OrderStatusCreated,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
	}
	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		restoreReservations(ctx, db, reserved)
		return nil, apperrors.Internal("failed to create order: " + err.Error())
	}

	// From here on the inventory commitment stands: a failed intent leaves
	// the order CREATED and retryable rather than rolled back.
	providerOrderID, err := CreatePaymentIntent(ctx, db, gw, &order)
	if err != nil {
		return nil, err
	}
	order.PaymentID = providerOrderID
	if err := db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", order.ID).
		Update("payment_id", providerOrderID).Error; err != nil {
		return nil, apperrors.Internal("failed to attach payment reference: " + err.Error())
	}

	if err := ClearCart(ctx, db, cart.ID); err != nil {
		return nil, err
	}

	if mailer != nil {
		body := fmt.Sprintf("Your order %s is created with total %.2f", order.ID, order.Total)
		if err := mailer.Send(email, "Order Placed", body); err != nil {
			log.Printf("❌ Failed to send order email: %v", err)
		}
	}

	return &order, nil
}

func UserOrders(ctx context.Context, db *gorm.DB, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch orders: " + err.Error())
	}
	return orders, nil
}

func AllOrders(ctx context.Context, db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	if err := db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch orders: " + err.Error())
	}
	return orders, nil
}

func GetOrder(ctx context.Context, db *gorm.DB, orderID string) (*models.Order, error) {
	var order models.Order
	if err := db.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Internal(err.Error())
	}
	return &order, nil
}

func parseOrderStatus(status string) (models.OrderStatus, error) {
	switch models.OrderStatus(status) {
	case models.OrderStatusCreated, models.OrderStatusPaid, models.OrderStatusCancelled:
		return models.OrderStatus(status), nil
	default:
		return "", apperrors.BadRequest("invalid order status: " + status)
	}
}

// UpdateOrderStatus is the administrative overwrite. It validates the status
// value but deliberately does not enforce forward-only transitions; manual
// corrections sometimes need to move an order backwards.
func UpdateOrderStatus(ctx context.Context, db *gorm.DB, orderID, status string) (*models.Order, error) {
	newStatus, err := parseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := GetOrder(ctx, db, orderID)
	if err != nil {
		return nil, err
	}
	order.Status = newStatus
	if err := db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).
		Update("status", newStatus).Error; err != nil {
		return nil, apperrors.Internal("failed to update order status: " + err.Error())
	}
	return order, nil
}
