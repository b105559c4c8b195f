package routes

import (
	"github.com/Shaikh-Suja-Rahaman/webwares/cache"
	"github.com/Shaikh-Suja-Rahaman/webwares/gateway"
	"github.com/Shaikh-Suja-Rahaman/webwares/middleware"
	"github.com/Shaikh-Suja-Rahaman/webwares/notify"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries everything the handlers need.
type Deps struct {
	DB      *gorm.DB
	Cache   *cache.Cache
	Gateway *gateway.Client
	Mailer  notify.Notifier
	Limiter *middleware.RateLimiter

	LoginLimit int
	OrderLimit int
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, deps Deps) {
	SetupAuthRoutes(r, deps)
	SetupProductRoutes(r, deps)
	SetupCartRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupPaymentRoutes(r, deps)
}
