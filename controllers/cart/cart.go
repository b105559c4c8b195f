package cartControllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const requestTimeout = 5 * time.Second

type CartItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func identity(c *gin.Context) (userID, email string, ok bool) {
	idVal, exists := c.Get("user_id")
	if !exists {
		apperrors.Respond(c, apperrors.Unauthorized("unauthorized"))
		return "", "", false
	}
	userID, _ = idVal.(string)
	emailVal, _ := c.Get("email")
	email, _ = emailVal.(string)
	return userID, email, true
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// POST /api/cart/items
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := identity(c)
		if !ok {
			return
		}
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid input: "+err.Error()))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		view, err := services.AddItem(ctx, db, userID, email, input.ProductID, input.Quantity)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// PUT /api/cart/items/:productId?quantity=N
func SetQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := identity(c)
		if !ok {
			return
		}
		quantity, err := strconv.Atoi(c.Query("quantity"))
		if err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid quantity"))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		view, serr := services.SetQuantity(ctx, db, userID, email, c.Param("productId"), quantity)
		if serr != nil {
			apperrors.Respond(c, serr)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DELETE /api/cart/items/:productId
func RemoveItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := identity(c)
		if !ok {
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		view, err := services.RemoveItem(ctx, db, userID, email, c.Param("productId"))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := identity(c)
		if !ok {
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		view, err := services.GetCart(ctx, db, userID, email)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
