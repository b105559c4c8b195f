package services

import (
	"context"
	"testing"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	gw := &fakeGateway{}
	mailer := &fakeMailer{}

	product := seedProduct(t, db, "Headphones", 10.0, 2)
	seedCart(t, db, "user-1", map[string]int{product.ID: 2})

	order, err := PlaceOrder(ctx, db, gw, mailer, "user-1", "u1@example.com", "card")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Equal(t, 20.0, order.Total)
	assert.Equal(t, "rzp_order_"+order.ID, order.PaymentID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Headphones", order.Items[0].Name)
	assert.Equal(t, 10.0, order.Items[0].UnitPrice)

	assert.Equal(t, 0, stockOf(t, db, product.ID))

	view, err := GetCart(ctx, db, "user-1", "u1@example.com")
	require.NoError(t, err)
	assert.Empty(t, view.Items, "cart is cleared after placement")

	var payment models.Payment
	require.NoError(t, db.First(&payment, "order_id = ?", order.ID).Error)
	assert.Equal(t, models.PaymentStatusCreated, payment.Status)
	assert.Equal(t, 20.0, payment.Amount)

	assert.Len(t, mailer.sent, 1)
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Webcam", 50.0, 5)
	seedCart(t, db, "user-1", map[string]int{product.ID: 1})

	order, err := PlaceOrder(ctx, db, &fakeGateway{}, nil, "user-1", "u1@example.com", "card")
	require.NoError(t, err)

	// A later price change never touches the snapshot.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 80.0).Error)

	got, err := GetOrder(ctx, db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Items[0].UnitPrice)
	assert.Equal(t, 50.0, got.Total)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)

	_, err := PlaceOrder(context.Background(), db, &fakeGateway{}, nil, "user-1", "", "card")
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", err.(*apperrors.Error).Code)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Speaker", 25.0, 2)
	seedCart(t, db, "user-1", map[string]int{product.ID: 3})

	_, err := PlaceOrder(ctx, db, &fakeGateway{}, nil, "user-1", "", "card")
	require.Error(t, err)
	appErr := err.(*apperrors.Error)
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
	assert.Contains(t, appErr.Message, "Speaker")

	assert.Equal(t, 2, stockOf(t, db, product.ID), "stock is untouched")

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no order is created")
}

func TestPlaceOrderCompensatesPriorReservations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	inStock := seedProduct(t, db, "Cable", 5.0, 5)
	outOfStock := seedProduct(t, db, "Adapter", 15.0, 0)
	seedCart(t, db, "user-1", map[string]int{inStock.ID: 2, outOfStock.ID: 1})

	_, err := PlaceOrder(ctx, db, &fakeGateway{}, nil, "user-1", "", "card")
	require.Error(t, err)

	assert.Equal(t, 5, stockOf(t, db, inStock.ID), "reserved stock is restored")
	assert.Equal(t, 0, stockOf(t, db, outOfStock.ID))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderIntentFailureLeavesOrderRetryable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Charger", 12.0, 3)
	cart := seedCart(t, db, "user-1", map[string]int{product.ID: 1})

	_, err := PlaceOrder(ctx, db, &fakeGateway{failIntent: true}, nil, "user-1", "", "card")
	require.Error(t, err)
	appErr := err.(*apperrors.Error)
	assert.Equal(t, "BAD_REQUEST", appErr.Code)
	assert.Contains(t, appErr.Message, "provider unavailable")

	// The order row stands, CREATED, with no payment reference; the
	// inventory commitment is kept.
	var order models.Order
	require.NoError(t, db.First(&order, "user_id = ?", "user-1").Error)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
	assert.Empty(t, order.PaymentID)
	assert.Equal(t, 2, stockOf(t, db, product.ID))

	// The cart survives for the retry.
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderMailerFailureDoesNotFailPlacement(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Tablet", 200.0, 1)
	seedCart(t, db, "user-1", map[string]int{product.ID: 1})

	order, err := PlaceOrder(context.Background(), db, &fakeGateway{}, &fakeMailer{fail: true}, "user-1", "u1@example.com", "card")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCreated, order.Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Router", 40.0, 1)
	seedCart(t, db, "user-1", map[string]int{product.ID: 1})

	order, err := PlaceOrder(ctx, db, &fakeGateway{}, nil, "user-1", "", "card")
	require.NoError(t, err)

	updated, err := UpdateOrderStatus(ctx, db, order.ID, "PAID")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)

	// The administrative path is an unconditional overwrite; backwards
	// moves are allowed for manual correction.
	updated, err = UpdateOrderStatus(ctx, db, order.ID, "CREATED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCreated, updated.Status)

	_, err = UpdateOrderStatus(ctx, db, order.ID, "SHIPPED")
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", err.(*apperrors.Error).Code)

	_, err = UpdateOrderStatus(ctx, db, "missing", "PAID")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*apperrors.Error).Code)
}

func TestUserOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Dock", 70.0, 5)

	seedCart(t, db, "user-1", map[string]int{product.ID: 1})
	_, err := PlaceOrder(ctx, db, &fakeGateway{}, nil, "user-1", "", "card")
	require.NoError(t, err)
	seedCart(t, db, "user-2", map[string]int{product.ID: 1})
	_, err = PlaceOrder(ctx, db, &fakeGateway{}, nil, "user-2", "", "card")
	require.NoError(t, err)

	mine, err := UserOrders(ctx, db, "user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := AllOrders(ctx, db)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
