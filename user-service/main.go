package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "user-service-backend/docs"
	"user-service-backend/shared/config"
	"user-service-backend/shared/database"
	"user-service-backend/shared/database/models"
	utils "user-service-backend/shared/utils/auth"
	"user-service-backend/shared/utils/cache"
	"user-service-backend/user-service/handlers"
	"user-service-backend/user-service/middleware"
)

// newRevocationCache picks the cache backend from config. Redis is for
// multi-instance deployments; the in-memory cache is the default.
func newRevocationCache(cfg *config.Config) cache.RevocationCache {
	ttl := time.Duration(cfg.GetCacheTTLMinutes()) * time.Minute
	sweep := time.Duration(cfg.GetCacheSweepMinutes()) * time.Minute

	if cfg.CacheBackend == "redis" {
		redisCache, err := cache.NewRedisRevocationCache(cfg, ttl)
		if err != nil {
			log.Fatalf("Failed to initialize Redis revocation cache: %v", err)
		}
		return redisCache
	}

	return cache.NewMemoryRevocationCache(ttl, sweep)
}

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	db := database.GetDB()

	// Shared auth components, built once at process start
	revocationCache := newRevocationCache(cfg)
	blacklist := utils.NewTokenBlacklist(db)
	userStore := database.NewUserStore(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userStore, blacklist, revocationCache)
	userHandler := handlers.NewUserHandler(db)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(30 * time.Minute)

	apiConfig := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetRateLimitMaxRequests(),
		TimeWindow:    time.Duration(cfg.GetRateLimitTimeWindowMinutes()) * time.Minute,
		BlockDuration: time.Duration(cfg.GetRateLimitBlockDurationMinutes()) * time.Minute,
	}

	loginConfig := middleware.RateLimitConfig{
		MaxRequests:   cfg.GetLoginRateLimitMaxAttempts(),
		TimeWindow:    time.Duration(cfg.GetLoginRateLimitWindowMinutes()) * time.Minute,
		BlockDuration: time.Duration(cfg.GetLoginRateLimitBlockMinutes()) * time.Minute,
	}

	router := gin.Default()

	// Base middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authRequired := middleware.AuthMiddleware(blacklist, revocationCache)
	privilegedOnly := middleware.RequireRole(models.PrivilegedRoles...)
	ownResource := middleware.RequireOwnership(models.PrivilegedRoles...)

	users := router.Group("/users")
	users.Use(rateLimiter.RateLimitMiddleware(apiConfig))
	{
		users.POST("/create", userHandler.CreateUser)
		users.POST("/login", rateLimiter.LoginRateLimitMiddleware(loginConfig), authHandler.Login)
		users.POST("/logout", authHandler.Logout)

		users.GET("/get", authRequired, userHandler.GetUsers)
		users.GET("/get/:id", authRequired, privilegedOnly, userHandler.GetUserByID)
		users.GET("/get-uuid/:uuid", authRequired, ownResource, userHandler.GetUserByUUID)

		users.PUT("/update/:id", authRequired, privilegedOnly, userHandler.UpdateUser)
		users.PUT("/update-uuid/", authRequired, ownResource, userHandler.UpdateUserByUUID)

		users.DELETE("/delete/:id", authRequired, privilegedOnly, userHandler.DeleteUser)
		users.DELETE("/delete-uuid/", authRequired, privilegedOnly, userHandler.DeleteUserByUUID)

		users.PATCH("/toggle/useractivity/:id", authRequired, privilegedOnly, userHandler.ToggleUserActivity)
		users.PATCH("/toggle-uuid/useractivity/", authRequired, privilegedOnly, userHandler.ToggleUserActivityByUUID)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user",
		})
	})

	log.Printf("🚀 User Service starting on port %s...", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
