package middleware

import (
	"net/http" // HTTP status codes

	"paydash/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Session cookie names. Plain cookies, no signing: this is a demo app.
const (
	UsernameCookie = "username" // Identifies the logged-in account
	RoleCookie     = "role"     // Mirrors the account's role for the frontend
)

const userKey = "user" // Context key for the loaded user

// SessionAuth validates the plain session cookie against the database and
// stores the loaded user in the request context.
func SessionAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := c.Cookie(UsernameCookie) // Read the session cookie
		if err != nil || username == "" {
			// No session cookie present
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		var user domain.User // Fetch the user from the database
		if err := db.First(&user, "username = ?", username).Error; err != nil {
			// Cookie names an unknown account
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		c.Set(userKey, user) // Store the user for downstream handlers
		c.Next()             // Proceed to the next handler
	}
}

// CurrentUser returns the user stored in the context by SessionAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.User{}, false // SessionAuth did not run
	}
	user, ok := v.(domain.User)
	return user, ok
}

// AdminOnly rejects requests whose session user is not an admin. Must run
// after SessionAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c) // Get the loaded user
		if !ok {
			// SessionAuth did not run or failed
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		// Check if user role is admin
		if user.Role != "admin" {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
