package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-dashboard-server/config"
	"property-dashboard-server/utils"
)

// RegisterAuthRoutes registers the admin login endpoint
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/login", AdminLogin)
}

// AdminLogin authenticates the dashboard admin and issues a JWT
func AdminLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	admin := config.AppConfig.Admin
	if admin.PasswordHash == "" {
		log.Printf("❌ Admin login attempted but ADMIN_PASSWORD_HASH is not configured")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin login is not configured"})
		return
	}

	if req.Username != admin.Username || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		log.Printf("❌ Admin login failed for username %s", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(req.Username, "admin")
	if err != nil {
		log.Printf("❌ Failed to generate token for admin %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Printf("✅ Admin %s logged in successfully", req.Username)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Login successful",
		"token":      token,
		"expires_in": config.AppConfig.JWT.ExpiryHours * 3600,
	})
}
