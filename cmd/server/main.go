package main

import (
	"context"   // Shutdown and Redis operations
	"errors"    // http.ErrServerClosed check
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Timeouts and TTLs

	"hoststore/internal/api"        // Custom package for API handlers
	"hoststore/internal/avatar"     // Avatar blob storage
	"hoststore/internal/config"     // Custom package for configuration
	"hoststore/internal/middleware" // Custom package for middleware

	"hoststore/internal/domain" // Role constants

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection; the cache is best-effort at request time, but a
	// misconfigured address should fail loudly at boot
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLHrs) * time.Hour // Token lifetime
	avatarStore := avatar.InlineStore{MaxEncodedBytes: 500 * 1024} // 500KB encoded cap

	root := r.Group("/api")

	// Public routes
	root.POST("/auth/register", api.RegisterHandler(db))                          // Registration endpoint
	root.POST("/auth/login", api.LoginHandler(db, cfg.JWTSecret, sessionTTL))     // Login endpoint
	root.POST("/auth/logout", api.LogoutHandler(db))                              // Logout endpoint
	root.GET("/store", api.ListStoreItemsHandler(db))                             // Catalog list endpoint
	root.GET("/store/:id", api.GetStoreItemHandler(db))                           // Catalog detail endpoint
	root.GET("/stats", api.StatsHandler(db, redisClient))                         // Public stats endpoint

	// Authenticated routes (bearer JWT or session cookie)
	authed := root.Group("", middleware.Authenticate(db, cfg.JWTSecret))
	authed.POST("/orders", api.CreateOrderHandler(db))                             // Checkout endpoint
	authed.GET("/orders", api.ListOrdersHandler(db))                               // Own orders endpoint
	authed.GET("/orders/:id/invoice", api.OrderInvoiceHandler(db))                 // PDF invoice endpoint
	authed.POST("/wallet/topup", api.TopUpHandler(db, redisClient))                // Wallet top-up endpoint
	authed.GET("/wallet/transactions", api.ListWalletTransactionsHandler(db, redisClient)) // Ledger endpoint
	authed.GET("/payment-methods", api.ListPaymentMethodsHandler(db, redisClient)) // Checkout channels endpoint
	authed.POST("/user/avatar", api.UploadAvatarHandler(db, avatarStore))          // Avatar upload endpoint
	authed.DELETE("/user/avatar", api.DeleteAvatarHandler(db))                     // Avatar removal endpoint

	// Admin routes (admin or owner)
	adminGroup := authed.Group("/admin", middleware.RequireRoles(domain.RoleAdmin, domain.RoleOwner))
	adminGroup.GET("/orders", api.ListAllOrdersHandler(db))    // All orders endpoint
	adminGroup.PUT("/orders", api.UpdateOrderStatusHandler(db)) // Status transition endpoint

	// Owner routes (payment channel configuration; admins may read)
	ownerGroup := authed.Group("/owner")
	ownerGroup.GET("/payment-settings",
		middleware.RequireRoles(domain.RoleOwner, domain.RoleAdmin), api.GetPaymentSettingsHandler(db))
	ownerGroup.POST("/payment-settings",
		middleware.RequireRoles(domain.RoleOwner), api.UpsertPaymentSettingsHandler(db, redisClient))
	ownerGroup.POST("/payment-settings/banks",
		middleware.RequireRoles(domain.RoleOwner), api.CreateBankAccountHandler(db, redisClient))
	ownerGroup.PUT("/payment-settings/banks/:id",
		middleware.RequireRoles(domain.RoleOwner), api.ToggleBankAccountHandler(db, redisClient))
	ownerGroup.POST("/payment-settings/ewallets",
		middleware.RequireRoles(domain.RoleOwner), api.CreateEWalletHandler(db, redisClient))
	ownerGroup.PUT("/payment-settings/ewallets/:id",
		middleware.RequireRoles(domain.RoleOwner), api.ToggleEWalletHandler(db, redisClient))

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort, // Listen address
		Handler: r,                 // Gin router
	}

	// Run the server in the background so signals can drive shutdown
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	// Close shared clients after the listener drains
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = redisClient.Close()
	logrus.Info("Server stopped.")
}
