package paymentControllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/gateway"
	"github.com/Shaikh-Suja-Rahaman/webwares/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const requestTimeout = 10 * time.Second

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// GET /api/payments/razorpay/key
func GetKey(client *gateway.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"keyId": client.KeyID})
	}
}

// POST /api/payments/razorpay/verify?providerOrderId&providerPaymentId&signature
func Verify(db *gorm.DB, gw gateway.PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerOrderID := c.Query("providerOrderId")
		providerPaymentID := c.Query("providerPaymentId")
		signature := c.Query("signature")
		if providerOrderID == "" || providerPaymentID == "" || signature == "" {
			apperrors.Respond(c, apperrors.BadRequest("providerOrderId, providerPaymentId and signature are required"))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		result, err := services.VerifyPayment(ctx, db, gw, providerOrderID, providerPaymentID, signature)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /api/payments/webhook/mock?providerPaymentId&status
func MockWebhook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerPaymentID := c.Query("providerPaymentId")
		status := c.Query("status")
		if providerPaymentID == "" || status == "" {
			apperrors.Respond(c, apperrors.BadRequest("providerPaymentId and status are required"))
			return
		}
		ctx, cancel := reqCtx(c)
		defer cancel()
		result, err := services.ApplyWebhook(ctx, db, providerPaymentID, status)
		if err != nil {
			apperrors.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
