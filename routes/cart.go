package routes

import (
	cartControllers "github.com/Shaikh-Suja-Rahaman/webwares/controllers/cart"
	"github.com/Shaikh-Suja-Rahaman/webwares/middleware"
	"github.com/gin-gonic/gin"
)

func SetupCartRoutes(r *gin.Engine, deps Deps) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCart(deps.DB))
		cart.POST("/items", cartControllers.AddItem(deps.DB))
		cart.PUT("/items/:productId", cartControllers.SetQuantity(deps.DB))
		cart.DELETE("/items/:productId", cartControllers.RemoveItem(deps.DB))
	}
}
