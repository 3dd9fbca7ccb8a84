package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	"github.com/formworks/formbuilder-server/config"
	"github.com/formworks/formbuilder-server/middleware"
	"github.com/formworks/formbuilder-server/models"
	"github.com/formworks/formbuilder-server/utils"
)

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/auth/login — admin fallback login with email + password.
func Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	var admin models.Admin
	if err := config.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot verify credentials"})
		return
	}

	if admin.PasswordHash == "" || !utils.CheckPassword(admin.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(admin.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "email": admin.Email, "is_admin": true})
}

type googleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

// POST /api/auth/google — respondent (and admin) sign-in with a Google ID
// token. The verified email becomes the identity the rest of the system
// trusts.
func GoogleLogin(c *gin.Context) {
	var req googleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, config.GoogleClientID())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Google token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email not verified"})
		return
	}
	email = strings.ToLower(email)

	token, err := utils.GenerateToken(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot issue token"})
		return
	}

	var count int64
	config.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&count)

	c.JSON(http.StatusOK, gin.H{"token": token, "email": email, "is_admin": count > 0})
}

// GET /api/me
func Me(c *gin.Context) {
	email := c.MustGet(middleware.CtxEmail).(string)

	var count int64
	config.DB.Model(&models.Admin{}).Where("email = ?", email).Count(&count)

	c.JSON(http.StatusOK, gin.H{"email": email, "is_admin": count > 0})
}
