package productControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/cache"
	"github.com/Shaikh-Suja-Rahaman/webwares/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const requestTimeout = 5 * time.Second

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// GET /api/products
func List(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := services.ProductListParams{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			MinPrice: c.Query("min_price"),
			MaxPrice: c.Query("max_price"),
			SortBy:   c.DefaultQuery("sort_by", "created_at"),
			Order:    c.DefaultQuery("order", "desc"),
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		products, err := services.ListProducts(ctx, db, cc, params)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func Get(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := reqCtx(c)
		defer cancel()
		product, err := services.GetProduct(ctx, db, cc, c.Param("id"))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// POST /api/products (admin)
func Create(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid input: "+err.Error()))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		product, err := services.CreateProduct(ctx, db, cc, input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /api/products/:id (admin)
func Update(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid input: "+err.Error()))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		product, err := services.UpdateProduct(ctx, db, cc, c.Param("id"), input)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/products/:id (admin)
func Delete(db *gorm.DB, cc *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := reqCtx(c)
		defer cancel()
		if err := services.DeleteProduct(ctx, db, cc, c.Param("id")); err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
