package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		apperrors.Abort(c, apperrors.Unauthorized("authorization header is missing"))
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		apperrors.Abort(c, apperrors.Unauthorized("invalid or expired token"))
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		apperrors.Abort(c, apperrors.Unauthorized("invalid token claims"))
		return
	}

	c.Set("user_id", claims["user_id"])
	c.Set("email", claims["email"])
	c.Set("role", claims["role"])
	c.Next()
}

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "ADMIN" {
		apperrors.Abort(c, apperrors.New(403, "FORBIDDEN", "admin access required"))
		return
	}
	c.Next()
}
