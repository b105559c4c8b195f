package routes

import (
	productControllers "github.com/Shaikh-Suja-Rahaman/webwares/controllers/product"
	"github.com/Shaikh-Suja-Rahaman/webwares/middleware"
	"github.com/gin-gonic/gin"
)

func SetupProductRoutes(r *gin.Engine, deps Deps) {
	products := r.Group("/api/products")
	{
		products.GET("", productControllers.List(deps.DB, deps.Cache))
		products.GET("/:id", productControllers.Get(deps.DB, deps.Cache))

		admin := products.Group("")
		admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
		{
			admin.POST("", productControllers.Create(deps.DB, deps.Cache))
			admin.PUT("/:id", productControllers.Update(deps.DB, deps.Cache))
			admin.DELETE("/:id", productControllers.Delete(deps.DB, deps.Cache))
		}
	}
}
