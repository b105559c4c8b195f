package routes

import (
	orderControllers "github.com/Shaikh-Suja-Rahaman/webwares/controllers/order"
	"github.com/Shaikh-Suja-Rahaman/webwares/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("",
			middleware.RateLimit(deps.Limiter, deps.OrderLimit, "orders"),
			orderControllers.PlaceOrder(deps.DB, deps.Gateway, deps.Mailer),
		)
		orders.GET("", orderControllers.MyOrders(deps.DB))

		admin := orders.Group("/admin")
		admin.Use(middleware.RequireAdmin)
		{
			admin.GET("", orderControllers.AllOrders(deps.DB))
			admin.GET("/ws", orderControllers.OrderFeed)
			admin.PUT("/:id/status", orderControllers.UpdateStatus(deps.DB))
		}

		// Registered after /admin so the static segment wins.
		orders.GET("/:id", orderControllers.GetOrder(deps.DB))
	}
}
