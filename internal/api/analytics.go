package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTLs

	"paydash/internal/domain"     // Importing domain models
	"paydash/internal/middleware" // Session user access
	"paydash/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// analyticsCacheTTL bounds how stale a cached analytics response can get.
const analyticsCacheTTL = 60 * time.Second

// summaryResponse is the cached shape of the analytics summary.
type summaryResponse struct {
	Username     string        `json:"username"`      // Account username
	FullName     string        `json:"full_name"`     // Display name
	BusinessName string        `json:"business_name"` // Business name
	Balance      string        `json:"balance"`       // Current balance, fixed two decimals
	Stats        BusinessStats `json:"stats"`         // Aggregated business figures
}

// SummaryHandler returns the logged-in user's dashboard summary: balance plus
// sales, transaction, customer and product aggregates.
func SummaryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get user loaded by SessionAuth
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		ctx := context.Background()                            // Context for Redis operations
		cacheKey := "analytics:summary:user:" + user.Username  // Per-user cache key
		var cached summaryResponse                             // Cached response shape
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			// Return cached summary
			c.JSON(http.StatusOK, gin.H{"summary": cached, "cached": true})
			return
		}
		stats, err := loadBusinessStats(db, user.Username) // Compute aggregates from the store
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load analytics"})
			return
		}
		resp := summaryResponse{
			Username:     user.Username,               // Account username
			FullName:     user.FullName,               // Display name
			BusinessName: user.BusinessName,           // Business name
			Balance:      user.Balance.StringFixed(2), // Balance with two decimals
			Stats:        stats,                       // Aggregated figures
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, analyticsCacheTTL) // Cache the summary
		c.JSON(http.StatusOK, gin.H{"summary": resp, "cached": false})  // Return the summary
	}
}

// monthlyRow is one month's revenue bucket for the analytics chart.
type monthlyRow struct {
	Month   string  `json:"month"`   // YYYY-MM bucket
	Revenue float64 `json:"revenue"` // Sum of completed totals
	Fees    float64 `json:"fees"`    // Sum of completed fees
	Count   int64   `json:"count"`   // Completed transactions in the bucket
}

// MonthlyHandler returns completed revenue and fees grouped by month.
func MonthlyHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get user loaded by SessionAuth
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		ctx := context.Background()                           // Context for Redis operations
		cacheKey := "analytics:monthly:user:" + user.Username // Per-user cache key
		var cached []monthlyRow                               // Cached response shape
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			// Return cached buckets
			c.JSON(http.StatusOK, gin.H{"months": cached, "cached": true})
			return
		}
		var rows []monthlyRow
		// SQLite strftime groups transactions into YYYY-MM buckets
		if err := db.Model(&domain.Transaction{}).
			Select("strftime('%Y-%m', transaction_date) AS month, SUM(total) AS revenue, SUM(fees) AS fees, COUNT(*) AS count").
			Where("username = ? AND status = ?", user.Username, domain.StatusCompleted).
			Group("month").
			Order("month").
			Scan(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load monthly analytics"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, rows, analyticsCacheTTL) // Cache the buckets
		c.JSON(http.StatusOK, gin.H{"months": rows, "cached": false})   // Return the buckets
	}
}

// ListTransactionsHandler returns the logged-in user's transactions, newest
// first, paginated and optionally filtered by status.
func ListTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get user loaded by SessionAuth
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		page := 1      // Default page
		pageSize := 20 // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			// Convert page to integer
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			// Convert page_size to integer
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		status := c.Query("status") // Optional status filter
		if status != "" && !domain.ValidStatus(status) {
			// Unknown status values are rejected rather than silently ignored
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
			return
		}
		offset := (page - 1) * pageSize // Calculate offset
		// Cache key covers every parameter that shapes the response
		cacheKey := "txs:user:" + user.Username + ":status=" + status +
			":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(pageSize)
		ctx := context.Background() // Context for Redis operations
		var cached struct {
			Transactions []domain.Transaction `json:"transactions"` // List of transactions
			Page         int                  `json:"page"`         // Current page
			PageSize     int                  `json:"page_size"`    // Page size
			Total        int64                `json:"total"`        // Total transactions
			TotalPages   int                  `json:"total_pages"`  // Total pages
		}
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			// Return the cached page
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions, // Cached transactions
				"page":         cached.Page,         // Current page
				"page_size":    cached.PageSize,     // Page size
				"total":        cached.Total,        // Total transactions
				"total_pages":  cached.TotalPages,   // Total pages
				"cached":       true,
			})
			return
		}
		query := db.Model(&domain.Transaction{}).Where("username = ?", user.Username)
		if status != "" {
			query = query.Where("status = ?", status) // Filter by status
		}
		var total int64 // Total count of transactions
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		var transactions []domain.Transaction // Slice to hold transactions
		// Fetch paginated transactions, newest first
		if err := query.
			Order("transaction_date desc").
			Offset(offset).
			Limit(pageSize).
			Find(&transactions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		resp := gin.H{
			"transactions": transactions, // List of transactions
			"page":         page,         // Current page
			"page_size":    pageSize,     // Page size
			"total":        total,        // Total transactions
			"total_pages":  totalPages,   // Total pages
			"cached":       false,        // Not from cache
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, analyticsCacheTTL) // Cache the page
		c.JSON(http.StatusOK, resp)                                     // Return transaction history
	}
}
