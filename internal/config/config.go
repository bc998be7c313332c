package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For timeout durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	DBPath         string        // Path to the SQLite database file
	RedisAddr      string        // Redis server address (empty disables caching)
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	LLMBaseURL     string        // Base URL of the chat completions provider
	LLMAPIKey      string        // API key for the provider
	LLMModel       string        // Model name sent to the provider
	LLMTimeout     time.Duration // Upper bound on a single provider call
	SessionTTL     int           // Session cookie lifetime in seconds
	FrontendOrigin string        // Allowed CORS origin for the dashboard frontend
	IsProd         bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),                                        // Application port
		DBPath:         getEnv("DB_PATH", "paydash.db"),                                   // SQLite database file
		RedisAddr:      os.Getenv("REDIS_ADDR"),                                           // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                                           // Redis password
		RedisDB:        getEnvInt("REDIS_DB", 0),                                          // Redis database number
		LLMBaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),               // Provider base URL
		LLMAPIKey:      os.Getenv("LLM_API_KEY"),                                          // Provider API key
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),                                // Provider model name
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second, // Provider call timeout
		SessionTTL:     getEnvInt("SESSION_TTL_SECONDS", 3600),                            // Session cookie lifetime
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),                // Dashboard frontend origin
		IsProd:         os.Getenv("IS_PROD") == "true",                                    // Is production environment
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v // Use the configured value
	}
	return def // Fall back to the default
}

// getEnvInt retrieves an environment variable as an integer or returns the default
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def // Not configured
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def // Not a number, fall back to the default
	}
	return n
}
