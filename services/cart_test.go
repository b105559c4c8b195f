package services

import (
	"context"
	"testing"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemMergesLines(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Notebook", 5.0, 10)

	_, err := AddItem(ctx, db, "user-1", "u1@example.com", product.ID, 2)
	require.NoError(t, err)
	view, err := AddItem(ctx, db, "user-1", "u1@example.com", product.ID, 3)
	require.NoError(t, err)

	require.Len(t, view.Items, 1, "same product must merge into one line")
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, "Notebook", view.Items[0].Name)
}

func TestAddItemAdvisoryStockCheck(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Pen", 1.0, 2)

	_, err := AddItem(context.Background(), db, "user-1", "", product.ID, 3)
	require.Error(t, err)
	assert.Equal(t, "BAD_REQUEST", err.(*apperrors.Error).Code)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)

	_, err := AddItem(context.Background(), db, "user-1", "", "missing", 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*apperrors.Error).Code)
}

func TestSetQuantityAndRemove(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Stapler", 8.0, 10)

	_, err := AddItem(ctx, db, "user-1", "", product.ID, 1)
	require.NoError(t, err)

	view, err := SetQuantity(ctx, db, "user-1", "", product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Items[0].Quantity)

	view, err = RemoveItem(ctx, db, "user-1", "", product.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestSetQuantityMissingLine(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Tape", 2.0, 10)

	_, err := SetQuantity(context.Background(), db, "user-1", "", product.ID, 2)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*apperrors.Error).Code)

	_, err = RemoveItem(context.Background(), db, "user-1", "", product.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*apperrors.Error).Code)
}

func TestGetCartLazilyCreates(t *testing.T) {
	db := newTestDB(t)

	view, err := GetCart(context.Background(), db, "user-1", "u1@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Empty(t, view.Items)
}

func TestLegacyCartMigratesOnRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Lamp", 30.0, 10)

	// A cart left behind under the email key.
	seedCart(t, db, "u1@example.com", map[string]int{product.ID: 2})

	view, err := GetCart(ctx, db, "user-1", "u1@example.com")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// The cart is now keyed canonically and the legacy key is gone.
	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", "u1@example.com").Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLegacyCartMergesWithoutDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	shared := seedProduct(t, db, "Desk", 120.0, 10)
	extra := seedProduct(t, db, "Chair", 60.0, 10)

	seedCart(t, db, "user-1", map[string]int{shared.ID: 1})
	seedCart(t, db, "u1@example.com", map[string]int{shared.ID: 2, extra.ID: 1})

	view, err := GetCart(ctx, db, "user-1", "u1@example.com")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	byProduct := map[string]int{}
	for _, line := range view.Items {
		byProduct[line.ProductID] = line.Quantity
	}
	assert.Equal(t, 3, byProduct[shared.ID], "shared line quantities are summed")
	assert.Equal(t, 1, byProduct[extra.ID])

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "legacy cart row is removed after the merge")
}

func TestClearCartKeepsCartRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	product := seedProduct(t, db, "Mug", 9.0, 10)
	cart := seedCart(t, db, "user-1", map[string]int{product.ID: 1})

	require.NoError(t, ClearCart(ctx, db, cart.ID))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", cart.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
