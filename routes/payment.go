package routes

import (
	paymentControllers "github.com/Shaikh-Suja-Rahaman/webwares/controllers/payment"
	"github.com/Shaikh-Suja-Rahaman/webwares/middleware"
	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(r *gin.Engine, deps Deps) {
	payments := r.Group("/api/payments")
	{
		razorpay := payments.Group("/razorpay")
		razorpay.Use(middleware.ValidateToken)
		{
			razorpay.GET("/key", paymentControllers.GetKey(deps.Gateway))
			razorpay.POST("/verify", paymentControllers.Verify(deps.DB, deps.Gateway))
		}

		// The mock webhook stands in for the gateway's async notification;
		// the shared key plays the part of the gateway's webhook signature.
		payments.POST("/webhook/mock",
			middleware.ValidateWebhookKey,
			paymentControllers.MockWebhook(deps.DB),
		)
	}
}
