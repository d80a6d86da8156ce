package api

import (
	"strconv" // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// Pagination defaults shared by all list endpoints
const (
	defaultPage  = 1   // First page
	defaultLimit = 10  // Default page size
	maxLimit     = 100 // Upper bound on page size
)

// parsePagination reads `page` (1-based) and `limit` query parameters,
// clamping both to sane values
func parsePagination(c *gin.Context) (page, limit, offset int) {
	page = defaultPage   // Default page number
	limit = defaultLimit // Default page size
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// Check and set limit within bounds
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= maxLimit {
			limit = v // Set limit if valid
		}
	}
	offset = (page - 1) * limit // Calculate offset for pagination
	return page, limit, offset
}

// paginationBody builds the `pagination` object every list endpoint returns
func paginationBody(page, limit int, total int64) gin.H {
	pages := (int(total) + limit - 1) / limit // Total number of pages
	return gin.H{
		"page":  page,  // Current page
		"limit": limit, // Page size
		"total": total, // Total row count
		"pages": pages, // Total pages
	}
}
