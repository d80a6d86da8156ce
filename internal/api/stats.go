package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time windows and cache TTLs

	"hoststore/internal/domain" // Importing domain models
	"hoststore/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// StatsResponse is the public aggregate block shown on the landing page
type StatsResponse struct {
	TotalUsers     int64     `json:"totalUsers"`     // Active users
	RecentUsers    int64     `json:"recentUsers"`    // Active users created in the last 7 days
	TotalServices  int64     `json:"totalServices"`  // ACTIVE services
	RecentServices int64     `json:"recentServices"` // Services created in the last 7 days
	TotalOrders    int64     `json:"totalOrders"`    // All orders
	TotalRevenue   int64     `json:"totalRevenue"`   // Summed COMPLETED order amounts
	LastUpdated    time.Time `json:"lastUpdated"`    // When the block was computed
}

// StatsHandler returns public aggregate counts, cached for 60 seconds
func StatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Try the cache first
		if rdb != nil {
			var cached StatsResponse
			if found, err := utils.GetCache(ctx, rdb, utils.StatsCacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"stats": cached, "cached": true})
				return
			}
		}
		weekAgo := time.Now().AddDate(0, 0, -7) // 7-day window
		var stats StatsResponse
		// Active users
		if err := db.Model(&domain.User{}).Where("is_active = ?", true).
			Count(&stats.TotalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Recent users
		if err := db.Model(&domain.User{}).Where("is_active = ? AND created_at >= ?", true, weekAgo).
			Count(&stats.RecentUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Running services
		if err := db.Model(&domain.Service{}).Where("status = ?", domain.ServiceActive).
			Count(&stats.TotalServices).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Recent services
		if err := db.Model(&domain.Service{}).Where("created_at >= ?", weekAgo).
			Count(&stats.RecentServices).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// All orders
		if err := db.Model(&domain.Order{}).Count(&stats.TotalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		// Completed revenue
		if err := db.Model(&domain.Order{}).Where("status = ?", domain.OrderCompleted).
			Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		stats.LastUpdated = time.Now() // Computation timestamp
		// Cache the block, best effort
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, utils.StatsCacheKey, stats, 60*time.Second)
		}
		c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": false})
	}
}
