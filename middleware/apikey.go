package middleware

import (
	"os"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/gin-gonic/gin"
)

// ValidateWebhookKey protects the mock webhook endpoint: only the gateway (or
// an admin holding the shared key) may post confirmations.
func ValidateWebhookKey(c *gin.Context) {
	apiKey := c.GetHeader("X-API-KEY")
	if apiKey == "" || apiKey != os.Getenv("WEBHOOK_API_KEY") {
		apperrors.Abort(c, apperrors.Unauthorized("invalid or missing API key"))
		return
	}
	c.Next()
}
