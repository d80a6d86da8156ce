package api

import (
	"net/http" // HTTP status codes

	"hoststore/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// ListStoreItemsHandler returns active catalog items with optional category
// and featured filters
func ListStoreItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := parsePagination(c) // Pagination parameters
		query := db.Model(&domain.StoreItem{}).Where("is_active = ?", true)
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category) // Filter by category
		}
		if c.Query("featured") == "true" {
			query = query.Where("is_featured = ?", true) // Featured items only
		}
		var total int64 // Total item count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count items"})
			return
		}
		var items []domain.StoreItem // Slice to hold items
		// Fetch paginated items, featured first
		if err := query.Order("is_featured desc, created_at desc").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"items":      items,                             // Catalog items
			"pagination": paginationBody(page, limit, total), // Pagination block
		})
	}
}

// GetStoreItemHandler returns a single active catalog item
func GetStoreItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.StoreItem
		// Inactive items are invisible to the storefront
		if err := db.Where("id = ? AND is_active = ?", c.Param("id"), true).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}
