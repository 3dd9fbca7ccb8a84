package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/models"
	"github.com/formworks/formbuilder-server/utils"
)

const (
	CtxEmail = "email"
	CtxAdmin = "admin"
)

// AuthJWT checks Authorization: Bearer <token>, validates the app JWT, and
// injects the verified email into the context. Handlers pass that email into
// services explicitly; nothing downstream reads ambient auth state.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken)
		if err != nil || claims.Email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(CtxEmail, strings.ToLower(claims.Email))
		c.Next()
	}
}

// RequireAdmin gates the dashboard: access needs an admins row matching the
// authenticated email.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxEmail)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		email := v.(string)

		var admin models.Admin
		if err := config.DB.Where("email = ?", email).First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Cannot verify admin"})
			return
		}

		c.Set(CtxAdmin, admin)
		c.Next()
	}
}
