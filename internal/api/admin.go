package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"paydash/internal/domain"     // Importing domain models
	"paydash/internal/middleware" // Session user access
	"paydash/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// invalidateUserCaches drops the cached analytics responses for a user after
// an admin write (simple version: delete the first 5 pages per status filter).
func invalidateUserCaches(rdb *redis.Client, username string) {
	ctx := context.Background() // Context for Redis operations
	_ = utils.DeleteCache(ctx, rdb, "analytics:summary:user:"+username)
	_ = utils.DeleteCache(ctx, rdb, "analytics:monthly:user:"+username)
	filters := append([]string{""}, domain.Statuses...) // Unfiltered plus every status filter
	for _, status := range filters {
		for i := 1; i <= 5; i++ {
			// Delete cache entries for this filter
			_ = utils.DeleteCache(ctx, rdb, "txs:user:"+username+":status="+status+":page:"+strconv.Itoa(i)+":size:20")
		}
	}
}

// UpdateUserRequest carries the editable user fields. Pointers distinguish
// omitted fields from zero values.
type UpdateUserRequest struct {
	FullName     *string  `json:"full_name"`     // Display name
	Email        *string  `json:"email"`         // Contact email
	BusinessName *string  `json:"business_name"` // Business name
	Balance      *float64 `json:"balance"`       // Account balance
	Role         *string  `json:"role"`          // user or admin
}

// UpdateUserHandler updates a user's profile fields from the admin panel.
func UpdateUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username") // Target account
		var req UpdateUserRequest       // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Role values are a fixed two-element enum
		if req.Role != nil && *req.Role != "user" && *req.Role != "admin" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		var user domain.User // Fetch the target user
		if err := db.First(&user, "username = ?", username).Error; err != nil {
			// Unknown username, nothing mutated
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		updates := map[string]any{} // Only the provided fields are written
		if req.FullName != nil {
			updates["full_name"] = *req.FullName
		}
		if req.Email != nil {
			updates["email"] = *req.Email
		}
		if req.BusinessName != nil {
			updates["business_name"] = *req.BusinessName
		}
		if req.Balance != nil {
			updates["balance"] = decimal.NewFromFloat(*req.Balance)
		}
		if req.Role != nil {
			updates["role"] = *req.Role
		}
		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				// Log the error with context
				logrus.WithFields(logrus.Fields{
					"username": username,    // Target account
					"error":    err.Error(), // Error message
				}).Error("User update failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}
		invalidateUserCaches(rdb, username) // Drop stale cached analytics
		// Log the successful update
		logrus.WithFields(logrus.Fields{
			"username": username,     // Target account
			"fields":   len(updates), // Number of fields changed
		}).Info("User updated")
		c.JSON(http.StatusOK, gin.H{"user": user}) // Return the new row state
	}
}

// DeleteUserHandler removes a user from the admin panel. Deleting an unknown
// username is a 404 and leaves the table unchanged.
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")       // Target account
		actor, _ := middleware.CurrentUser(c) // Admin performing the delete
		if actor.Username == username {
			// Admins cannot delete their own account
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
			return
		}
		var user domain.User // Fetch the target user
		if err := db.First(&user, "username = ?", username).Error; err != nil {
			// Unknown username, nothing mutated
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err := db.Delete(&user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,    // Target account
				"error":    err.Error(), // Error message
			}).Error("User delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		invalidateUserCaches(rdb, username) // Drop stale cached analytics
		logrus.WithFields(logrus.Fields{
			"username": username,       // Deleted account
			"admin":    actor.Username, // Acting admin
		}).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

// UpdateTransactionRequest carries the editable transaction fields.
type UpdateTransactionRequest struct {
	CustomerID      *uint    `json:"customer_id"`       // Foreign key to Customer
	ProductID       *uint    `json:"product_id"`        // Foreign key to Product
	PaymentMethodID *uint    `json:"payment_method_id"` // Foreign key to PaymentMethod
	Amount          *float64 `json:"amount"`            // Gross amount
	Fees            *float64 `json:"fees"`              // Processing fees
	Status          *string  `json:"status"`            // Transaction status
}

// UpdateTransactionHandler updates a transaction from the admin editor.
// Foreign ids are checked ad hoc against their tables before the write; the
// total is recomputed whenever amount or fees change.
func UpdateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Target transaction id
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		var req UpdateTransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Status must be one of the known enum values
		if req.Status != nil && !domain.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		var tx domain.Transaction // Fetch the target transaction
		if err := db.First(&tx, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		// Ad hoc foreign-key existence checks
		if req.CustomerID != nil {
			if err := db.First(&domain.Customer{}, *req.CustomerID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown customer"})
				return
			}
			tx.CustomerID = *req.CustomerID
		}
		if req.ProductID != nil {
			if err := db.First(&domain.Product{}, *req.ProductID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown product"})
				return
			}
			tx.ProductID = *req.ProductID
		}
		if req.PaymentMethodID != nil {
			if err := db.First(&domain.PaymentMethod{}, *req.PaymentMethodID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
				return
			}
			tx.PaymentMethodID = *req.PaymentMethodID
		}
		if req.Amount != nil {
			tx.Amount = decimal.NewFromFloat(*req.Amount)
		}
		if req.Fees != nil {
			tx.Fees = decimal.NewFromFloat(*req.Fees)
		}
		if req.Amount != nil || req.Fees != nil {
			tx.Total = tx.Amount.Sub(tx.Fees) // Total always derives from amount and fees
		}
		if req.Status != nil {
			tx.Status = *req.Status
		}
		if err := db.Save(&tx).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"transaction_id": id,          // Target transaction
				"error":          err.Error(), // Error message
			}).Error("Transaction update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		invalidateUserCaches(rdb, tx.Username) // Drop stale cached analytics
		logrus.WithFields(logrus.Fields{
			"transaction_id": id,        // Target transaction
			"status":         tx.Status, // New status
		}).Info("Transaction updated")
		c.JSON(http.StatusOK, gin.H{"transaction": tx}) // Return the new row state
	}
}

// ListCustomerOptions returns every customer for the transaction editor
// dropdown.
func ListCustomerOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var customers []domain.Customer
		if err := db.Order("name").Find(&customers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

// ListPaymentMethodOptions returns every payment method for the transaction
// editor dropdown.
func ListPaymentMethodOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var methods []domain.PaymentMethod
		if err := db.Order("id").Find(&methods).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
	}
}

// ListProductOptions returns the logged-in user's products for the
// transaction editor dropdown.
func ListProductOptions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get user loaded by SessionAuth
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		var products []domain.Product
		if err := db.Where("username = ?", user.Username).Order("name").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// ListStatusOptions returns the transaction status enum.
func ListStatusOptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"statuses": domain.Statuses})
	}
}
