package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/cache"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	productByIDPrefix = "products:id:"
	productListPrefix = "products:list:"
)

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

type ProductListParams struct {
	Search   string
	Category string
	MinPrice string
	MaxPrice string
	SortBy   string
	Order    string
}

// CacheKey is a canonical serialization of the query parameters, so equal
// queries always hit the same entry.
func (p ProductListParams) CacheKey() string {
	return fmt.Sprintf("%ssearch=%s&category=%s&min=%s&max=%s&sort=%s&order=%s",
		productListPrefix, p.Search, p.Category, p.MinPrice, p.MaxPrice, p.SortBy, p.Order)
}

func ListProducts(ctx context.Context, db *gorm.DB, c *cache.Cache, params ProductListParams) ([]models.Product, error) {
	var products []models.Product
	err := c.GetOrCompute(ctx, params.CacheKey(), &products, func() (any, error) {
		query := db.WithContext(ctx).Model(&models.Product{})
		if params.Search != "" {
			like := "%" + params.Search + "%"
			query = query.Where("name LIKE ? OR description LIKE ?", like, like)
		}
		if params.Category != "" {
			query = query.Where("category = ?", params.Category)
		}
		if params.MinPrice != "" {
			query = query.Where("price >= ?", params.MinPrice)
		}
		if params.MaxPrice != "" {
			query = query.Where("price <= ?", params.MaxPrice)
		}
		sortBy := params.SortBy
		switch sortBy {
		case "price", "name", "created_at":
		default:
			sortBy = "created_at"
		}
		dir := "DESC"
		if params.Order == "asc" {
			dir = "ASC"
		}
		var out []models.Product
		if err := query.Order(sortBy + " " + dir).Find(&out).Error; err != nil {
			return nil, apperrors.Internal("failed to fetch products: " + err.Error())
		}
		return out, nil
	})
	return products, err
}

func GetProduct(ctx context.Context, db *gorm.DB, c *cache.Cache, id string) (*models.Product, error) {
	var product models.Product
	err := c.GetOrCompute(ctx, productByIDPrefix+id, &product, func() (any, error) {
		var p models.Product
		if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("product not found")
			}
			return nil, apperrors.Internal(err.Error())
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func CreateProduct(ctx context.Context, db *gorm.DB, c *cache.Cache, input ProductInput) (*models.Product, error) {
	product := models.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		CreatedAt:   time.Now(),
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, apperrors.Internal("failed to create product: " + err.Error())
	}
	c.InvalidatePrefix(ctx, productListPrefix)
	return &product, nil
}

func UpdateProduct(ctx context.Context, db *gorm.DB, c *cache.Cache, id string, input ProductInput) (*models.Product, error) {
	var product models.Product
	if err := db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("product not found")
		}
		return nil, apperrors.Internal(err.Error())
	}
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Category = input.Category
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if err := db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, apperrors.Internal("failed to update product: " + err.Error())
	}
	c.Invalidate(ctx, productByIDPrefix+id)
	c.InvalidatePrefix(ctx, productListPrefix)
	return &product, nil
}

func DeleteProduct(ctx context.Context, db *gorm.DB, c *cache.Cache, id string) error {
	res := db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.Internal("failed to delete product: " + res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("product not found")
	}
	c.Invalidate(ctx, productByIDPrefix+id)
	c.InvalidatePrefix(ctx, productListPrefix)
	return nil
}
