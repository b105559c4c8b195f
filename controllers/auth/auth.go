package authControllers

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/Shaikh-Suja-Rahaman/webwares/apperrors"
	"github.com/Shaikh-Suja-Rahaman/webwares/models"
	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func signToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// POST /api/auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid input: "+err.Error()))
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			apperrors.Respond(c, apperrors.BadRequest("email already registered"))
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.Internal(err.Error()))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal("failed to hash password"))
			return
		}
		user := models.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			CreatedAt:    time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			apperrors.Respond(c, apperrors.Internal("failed to create user"))
			return
		}

		token, err := signToken(&user)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal("failed to sign token"))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user_id": user.ID})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.Respond(c, apperrors.BadRequest("invalid input: "+err.Error()))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			apperrors.Respond(c, apperrors.Unauthorized("invalid credentials"))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			apperrors.Respond(c, apperrors.Unauthorized("invalid credentials"))
			return
		}

		token, err := signToken(&user)
		if err != nil {
			apperrors.Respond(c, apperrors.Internal("failed to sign token"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID})
	}
}
