package orderControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/gateway"
	"github.com/Shaikh-Suja-Rahaman/webwares/notify"
	"github.com/Shaikh-Suja-Rahaman/webwares/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const requestTimeout = 15 * time.Second

type PlaceOrderRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
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

// POST /api/orders
func PlaceOrder(db *gorm.DB, gw gateway.PaymentGateway, mailer notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, email, ok := identity(c)
		if !ok {
			return
		}
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid input: "+err.Error()))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		order, err := services.PlaceOrder(ctx, db, gw, mailer, userID, email, req.PaymentMethod)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		broadcastOrderEvent("order_placed", order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
func MyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := identity(c)
		if !ok {
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		orders, err := services.UserOrders(ctx, db, userID)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := reqCtx(c)
		defer cancel()
		order, err := services.GetOrder(ctx, db, c.Param("id"))
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/orders/admin
func AllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := reqCtx(c)
		defer cancel()
		orders, err := services.AllOrders(ctx, db)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/orders/admin/:id/status?status=
func UpdateStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")
		if status == "" {
			apperrors.Respond(c, apperrors.BadRequest("status is required"))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		order, err := services.UpdateOrderStatus(ctx, db, c.Param("id"), status)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		broadcastOrderEvent("status_changed", order)
		c.JSON(http.StatusOK, order)
	}
}
