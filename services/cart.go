package services

import (
	"context"
	"errors"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type CartView struct {
	ID    string     `json:"id"`
	Items []CartLine `json:"items"`
}

// findOrMigrateCart loads the cart stored under the canonical user id,
// lazily creating one if none exists. Carts left behind under the legacy
// email key are folded into the canonical cart on first access and the
// legacy row is removed, so lines are never duplicated.
func findOrMigrateCart(ctx context.Context, db *gorm.DB, userID, legacyKey string) (*models.Cart, error) {
	var cart models.Cart
	err := db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to load cart: " + err.Error())
	}
	found := err == nil

	if legacyKey != "" && legacyKey != userID {
		var legacy models.Cart
		lerr := db.WithContext(ctx).Preload("Items").Where("user_id = ?", legacyKey).First(&legacy).Error
		switch {
		case lerr == nil && !found:
			// Re-key the legacy cart in place.
			if err := db.WithContext(ctx).Model(&legacy).Update("user_id", userID).Error; err != nil {
				return nil, apperrors.Internal("failed to migrate cart: " + err.Error())
			}
			legacy.UserID = userID
			return &legacy, nil
		case lerr == nil && found:
			// Both exist: merge legacy lines into the canonical cart, then drop it.
			for _, li := range legacy.Items {
				merged := false
				for i := range cart.Items {
					if cart.Items[i].ProductID == li.ProductID {
						cart.Items[i].Quantity += li.Quantity
						if err := db.WithContext(ctx).Save(&cart.Items[i]).Error; err != nil {
							return nil, apperrors.Internal(err.Error())
						}
						merged = true
						break
					}
				}
				if !merged {
					item := models.CartItem{
						ID:        uuid.NewString(),
						CartID:    cart.ID,
						ProductID: li.ProductID,
						Quantity:  li.Quantity,
						AddedAt:   li.AddedAt,
					}
					if err := db.WithContext(ctx).Create(&item).Error; err != nil {
						return nil, apperrors.Internal(err.Error())
					}
					cart.Items = append(cart.Items, item)
				}
			}
			if err := db.WithContext(ctx).Where("cart_id = ?", legacy.ID).Delete(&models.CartItem{}).Error; err != nil {
				return nil, apperrors.Internal(err.Error())
			}
			if err := db.WithContext(ctx).Delete(&legacy).Error; err != nil {
				return nil, apperrors.Internal(err.Error())
			}
			return &cart, nil
		case lerr != nil && !errors.Is(lerr, gorm.ErrRecordNotFound):
			return nil, apperrors.Internal("failed to load cart: " + lerr.Error())
		}
	}

	if found {
		return &cart, nil
	}

	cart = models.Cart{ID: uuid.NewString(), UserID: userID}
	if err := db.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, apperrors.Internal("failed to create cart: " + err.Error())
	}
	return &cart, nil
}

// AddItem merges the quantity into an existing line for the same product
// rather than appending a duplicate. The stock comparison here is advisory;
// the authoritative check happens at order placement.
func AddItem(ctx context.Context, db *gorm.DB, userID, legacyKey, productID string, quantity int) (*CartView, error) {
	var product models.Product
	if err := db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Internal(err.Error())
	}
	if quantity > product.Stock {
		return nil, apperrors.BadRequest("insufficient stock")
	}

	cart, err := findOrMigrateCart(ctx, db, userID, legacyKey)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].AddedAt = time.Now()
			if err := db.WithContext(ctx).Save(&cart.Items[i]).Error; err != nil {
				return nil, apperrors.Internal("failed to update cart item: " + err.Error())
			}
			return cartView(ctx, db, cart)
		}
	}

	item := models.CartItem{
		ID:        uuid.NewString(),
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, apperrors.Internal("failed to add cart item: " + err.Error())
	}
	cart.Items = append(cart.Items, item)
	return cartView(ctx, db, cart)
}

func SetQuantity(ctx context.Context, db *gorm.DB, userID, legacyKey, productID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, apperrors.BadRequest("quantity must be at least 1")
	}
	cart, err := findOrMigrateCart(ctx, db, userID, legacyKey)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			if err := db.WithContext(ctx).Save(&cart.Items[i]).Error; err != nil {
				return nil, apperrors.Internal("failed to update cart item: " + err.Error())
			}
			return cartView(ctx, db, cart)
		}
	}
	return nil, apperrors.NotFound("item not found in cart")
}

func RemoveItem(ctx context.Context, db *gorm.DB, userID, legacyKey, productID string) (*CartView, error) {
	cart, err := findOrMigrateCart(ctx, db, userID, legacyKey)
	if err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return nil, apperrors.Internal("failed to remove cart item: " + res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.NotFound("item not found in cart")
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	return cartView(ctx, db, cart)
}

func GetCart(ctx context.Context, db *gorm.DB, userID, legacyKey string) (*CartView, error) {
	cart, err := findOrMigrateCart(ctx, db, userID, legacyKey)
	if err != nil {
		return nil, err
	}
	return cartView(ctx, db, cart)
}

// ClearCart empties the cart but keeps the cart row itself.
func ClearCart(ctx context.Context, db *gorm.DB, cartID string) error {
	if err := db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return apperrors.Internal("failed to clear cart: " + err.Error())
	}
	return nil
}

func cartView(ctx context.Context, db *gorm.DB, cart *models.Cart) (*CartView, error) {
	view := &CartView{ID: cart.ID, Items: make([]CartLine, 0, len(cart.Items))}
	for _, item := range cart.Items {
		var product models.Product
		if err := db.WithContext(ctx).First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("product not found")
			}
			return nil, apperrors.Internal(err.Error())
		}
		view.Items = append(view.Items, CartLine{
			ProductID: item.ProductID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
	}
	return view, nil
}
