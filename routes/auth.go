package routes

import (
	authControllers "github.com/Shaikh-Suja-Rahaman/webwares/controllers/auth"
	"github.com/Shaikh-Suja-Rahaman/webwares/middleware"
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.Engine, deps Deps) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authControllers.Register(deps.DB))
		auth.POST("/login",
			middleware.RateLimit(deps.Limiter, deps.LoginLimit, "login"),
			authControllers.Login(deps.DB),
		)
	}
}
