package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	ServerPort string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret      string
	JWTExpireHours string

	// Revocation cache
	CacheBackend      string // "memory" or "redis"
	CacheTTLMinutes   string
	CacheSweepMinutes string

	// Redis (used when CacheBackend is "redis")
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       string

	// Seed accounts
	AdminEmail    string
	AdminPassword string
	ModEmail      string
	ModPassword   string

	// Rate Limiting
	RateLimitMaxRequests          string
	RateLimitTimeWindowMinutes    string
	RateLimitBlockDurationMinutes string

	// Login Rate Limiting
	LoginRateLimitMaxAttempts   string
	LoginRateLimitWindowMinutes string
	LoginRateLimitBlockMinutes  string

	// CORS
	FrontendURL string
}

var cfg *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("✅ Environment loaded from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg = &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "userservice"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpireHours: getEnv("JWT_EXPIRE_HOURS", "1"),

		// Revocation cache
		CacheBackend:      getEnv("CACHE_BACKEND", "memory"),
		CacheTTLMinutes:   getEnv("CACHE_TTL_MINUTES", "10"),
		CacheSweepMinutes: getEnv("CACHE_SWEEP_MINUTES", "2"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		// Seed accounts
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@userservice.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		ModEmail:      getEnv("MOD_EMAIL", "mod@userservice.local"),
		ModPassword:   getEnv("MOD_PASSWORD", "mod12345"),

		// Rate Limiting
		RateLimitMaxRequests:          getEnv("RATE_LIMIT_MAX_REQUESTS", "100"),
		RateLimitTimeWindowMinutes:    getEnv("RATE_LIMIT_TIME_WINDOW_MINUTES", "15"),
		RateLimitBlockDurationMinutes: getEnv("RATE_LIMIT_BLOCK_DURATION_MINUTES", "15"),

		// Login Rate Limiting
		LoginRateLimitMaxAttempts:   getEnv("LOGIN_RATE_LIMIT_MAX_ATTEMPTS", "3"),
		LoginRateLimitWindowMinutes: getEnv("LOGIN_RATE_LIMIT_WINDOW_MINUTES", "60"),
		LoginRateLimitBlockMinutes:  getEnv("LOGIN_RATE_LIMIT_BLOCK_MINUTES", "60"),

		// CORS
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3001"),
	}

	log.Println("✅ Configuration loaded successfully")
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if cfg == nil {
		LoadConfig()
	}
	return cfg
}

// GetCacheTTLMinutes returns the revocation cache TTL as integer
func (c *Config) GetCacheTTLMinutes() int {
	return atoiOrDefault(c.CacheTTLMinutes, 10)
}

// GetCacheSweepMinutes returns the revocation cache sweep interval as integer
func (c *Config) GetCacheSweepMinutes() int {
	return atoiOrDefault(c.CacheSweepMinutes, 2)
}

// GetRateLimitMaxRequests returns the rate limit max requests as integer
func (c *Config) GetRateLimitMaxRequests() int {
	return atoiOrDefault(c.RateLimitMaxRequests, 100)
}

// GetRateLimitTimeWindowMinutes returns the rate limit time window as integer
func (c *Config) GetRateLimitTimeWindowMinutes() int {
	return atoiOrDefault(c.RateLimitTimeWindowMinutes, 15)
}

// GetRateLimitBlockDurationMinutes returns the rate limit block duration as integer
func (c *Config) GetRateLimitBlockDurationMinutes() int {
	return atoiOrDefault(c.RateLimitBlockDurationMinutes, 15)
}

// GetLoginRateLimitMaxAttempts returns the login rate limit max attempts as integer
func (c *Config) GetLoginRateLimitMaxAttempts() int {
	return atoiOrDefault(c.LoginRateLimitMaxAttempts, 3)
}

// GetLoginRateLimitWindowMinutes returns the login rate limit window as integer
func (c *Config) GetLoginRateLimitWindowMinutes() int {
	return atoiOrDefault(c.LoginRateLimitWindowMinutes, 60)
}

// GetLoginRateLimitBlockMinutes returns the login rate limit block duration as integer
func (c *Config) GetLoginRateLimitBlockMinutes() int {
	return atoiOrDefault(c.LoginRateLimitBlockMinutes, 60)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func atoiOrDefault(value string, defaultValue int) int {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}
	return defaultValue
}
