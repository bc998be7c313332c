package main

import (
	"log" // log package is needed for logging

	"paydash/internal/api"    // Custom package for API handlers
	"paydash/internal/config" // Custom package for configuration
	"paydash/internal/db"     // Custom package for the local store
	"paydash/internal/llm"    // Custom package for the chat provider client

	"context" // context package is needed for the Redis ping

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Open the single-file SQLite store
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err) // Fatal error if the store cannot be opened
	}
	// Create the schema and the demo dataset (both idempotent)
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	if err := db.Seed(database); err != nil {
		logrus.Fatalf("seeding failed: %v", err)
	}

	// Setup Redis client (optional: caching is skipped when unconfigured)
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, response caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Chat provider client
	client := llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)

	// Setup Gin with every dashboard route
	r := api.NewRouter(database, redisClient, client, cfg)

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err) // Start the server on port cfg.AppPort
	}
}
