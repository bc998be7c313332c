package api

import (
	"net/http" // HTTP status codes
	"strings"  // Username normalization

	"paydash/internal/domain"     // Importing domain models
	"paydash/internal/middleware" // Session cookie names

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// LoginRequest is the login form body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// LoginHandler checks the plaintext demo credentials against the store and
// sets the two plain session cookies (username and role) with a fixed TTL.
func LoginHandler(db *gorm.DB, ttl int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, "username = ?", strings.ToLower(req.Username)).Error; err != nil {
			// If user not found, return unauthorized without setting cookies
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Plaintext comparison: demo-only credentials, stored as-is
		if user.Password != req.Password {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Two plain cookies, no signing, fixed short TTL
		c.SetCookie(middleware.UsernameCookie, user.Username, ttl, "/", "", false, false)
		c.SetCookie(middleware.RoleCookie, user.Role, ttl, "/", "", false, false)
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"username": user.Username, // Logged-in account
			"role":     user.Role,     // Account role
		}).Info("User logged in")
		c.JSON(http.StatusOK, gin.H{"user": user}) // Return the account profile
	}
}

// LogoutHandler clears both session cookies.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Expire both cookies immediately
		c.SetCookie(middleware.UsernameCookie, "", -1, "/", "", false, false)
		c.SetCookie(middleware.RoleCookie, "", -1, "/", "", false, false)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// SessionHandler returns the profile of the logged-in user.
func SessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get user loaded by SessionAuth
		if !ok {
			// SessionAuth did not run
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user}) // Return the stored profile
	}
}
