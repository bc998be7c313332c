package api

import (
	"paydash/internal/config"     // Application configuration
	"paydash/internal/llm"        // Provider client
	"paydash/internal/middleware" // Session and request-id middleware

	"github.com/gin-contrib/cors"  // CORS middleware for the dashboard frontend
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// NewRouter wires every route of the dashboard API.
func NewRouter(db *gorm.DB, rdb *redis.Client, client *llm.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance with logging and recovery

	r.Use(middleware.RequestID()) // Tag every request for log correlation
	// The dashboard frontend runs on its own origin and sends session cookies
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendOrigin},                      // Dashboard frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},          // Allowed HTTP methods
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},          // Allowed headers
		AllowCredentials: true,                                              // Session cookies cross the origin
	}))

	apiGroup := r.Group("/api") // All routes live under /api

	// Session routes (no auth required)
	apiGroup.POST("/auth/login", LoginHandler(db, cfg.SessionTTL)) // Login endpoint
	apiGroup.POST("/auth/logout", LogoutHandler())                 // Logout endpoint

	// Authenticated routes (session cookie required)
	authed := apiGroup.Group("", middleware.SessionAuth(db))
	authed.GET("/auth/session", SessionHandler())                   // Session info endpoint
	authed.GET("/analytics/summary", SummaryHandler(db, rdb))       // Dashboard summary endpoint
	authed.GET("/analytics/monthly", MonthlyHandler(db, rdb))       // Monthly revenue endpoint
	authed.GET("/transactions", ListTransactionsHandler(db, rdb))   // Recent activity endpoint
	authed.GET("/options/customers", ListCustomerOptions(db))       // Customer dropdown options
	authed.GET("/options/payment-methods", ListPaymentMethodOptions(db)) // Payment method dropdown options
	authed.GET("/options/products", ListProductOptions(db))         // Product dropdown options
	authed.GET("/options/statuses", ListStatusOptions())            // Status enum options
	authed.POST("/chat", ChatHandler(db, client, cfg.LLMTimeout))   // Chat relay endpoint

	// Admin routes (admin role required)
	admin := authed.Group("/admin", middleware.AdminOnly())
	admin.PUT("/users/:username", UpdateUserHandler(db, rdb))        // Update user endpoint
	admin.DELETE("/users/:username", DeleteUserHandler(db, rdb))     // Delete user endpoint
	admin.PUT("/transactions/:id", UpdateTransactionHandler(db, rdb)) // Update transaction endpoint

	return r
}
