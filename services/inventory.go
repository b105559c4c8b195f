package services

import (
	"context"
	"errors"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"gorm.io/gorm"
)

// Reserve decrements stock for a product with a single conditional UPDATE, so
// two concurrent reservations for the last unit can never both succeed.
func Reserve(ctx context.Context, db *gorm.DB, productID string, quantity int) error {
	if quantity <= 0 {
		return apperrors.BadRequest("quantity must be positive")
	}

	res := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return apperrors.Internal("failed to reserve stock: " + res.Error.Error())
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// No row matched: either the product is gone or the stock is short.
	var product models.Product
	if err := db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("product not found")
		}
		return apperrors.Internal(err.Error())
	}
	return apperrors.BadRequest("insufficient stock for product: " + product.Name)
}

// Restore re-adds a previously reserved quantity. It is the compensation for
// Reserve and must only ever be called with amounts that were actually
// reserved, so it never needs a ceiling check.
func Restore(ctx context.Context, db *gorm.DB, productID string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	res := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if res.Error != nil {
		return apperrors.Internal("failed to restore stock: " + res.Error.Error())
	}
	return nil
}
