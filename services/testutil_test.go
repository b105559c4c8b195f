package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection so every session sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     price,
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, userID string, lines map[string]int) models.Cart {
	t.Helper()
	cart := models.Cart{ID: uuid.NewString(), UserID: userID}
	require.NoError(t, db.Create(&cart).Error)
	for productID, qty := range lines {
		item := models.CartItem{
			ID:        uuid.NewString(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  qty,
			AddedAt:   time.Now(),
		}
		require.NoError(t, db.Create(&item).Error)
	}
	return cart
}

func stockOf(t *testing.T, db *gorm.DB, productID string) int {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", productID).Error)
	return product.Stock
}

// fakeGateway is a stand-in provider: intents are named after the receipt and
// the only valid signature is "sig-ok".
type fakeGateway struct {
	failIntent bool
	intents    []string
}

func (g *fakeGateway) CreateIntent(ctx context.Context, receiptID string, amountMinor int64, currency string) (string, error) {
	if g.failIntent {
		return "", fmt.Errorf("provider unavailable")
	}
	id := "rzp_order_" + receiptID
	g.intents = append(g.intents, id)
	return id, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == "sig-ok"
}

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return fmt.Errorf("smtp down")
	}
	m.sent = append(m.sent, to+": "+subject)
	return nil
}
