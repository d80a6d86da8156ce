package api

import (
	"net/http" // HTTP status codes

	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/middleware" // Resolved identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ListAllOrdersHandler returns every order with user, item and service info.
// Admin/owner only (enforced by route middleware).
func ListAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, offset := parsePagination(c) // Pagination parameters
		query := db.Model(&domain.Order{})        // Start building the query
		if status := c.Query("status"); status != "" && status != "all" {
			query = query.Where("status = ?", status) // Filter by status
		}
		if userID := c.Query("userId"); userID != "" {
			query = query.Where("user_id = ?", userID) // Filter by user
		}
		var total int64 // Total order count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		var orders []domain.Order // Slice to hold orders
		// Fetch paginated orders with all relations preloaded
		if err := query.Preload("User").Preload("StoreItem").Preload("Service").
			Order("created_at desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":     orders,                             // All matching orders
			"pagination": paginationBody(page, limit, total), // Pagination block
		})
	}
}

// UpdateOrderStatusRequest is the admin transition payload
type UpdateOrderStatusRequest struct {
	OrderID    string  `json:"orderId" binding:"required"` // Order to transition
	Status     string  `json:"status" binding:"required"`  // Target status
	AdminNotes *string `json:"adminNotes"`                 // Optional notes
}

// UpdateOrderStatusHandler transitions an order's status and propagates the
// mapped status to a linked service. The target status is validated against
// the allow-list before anything is touched; the order and service updates
// commit together or not at all.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Acting admin
		var req UpdateOrderStatusRequest    // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID and status are required"})
			return
		}
		// Reject unrecognized target statuses with no mutation
		if !domain.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		// Load the order
		var order domain.Order
		if err := db.Where("id = ?", req.OrderID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Order update and service propagation are one atomic unit
		err := db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]any{
				"status":      req.Status,     // Target status
				"admin_notes": req.AdminNotes, // Optional notes
			}
			// Update the order row
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err // Return error to rollback
			}
			// Propagate the mapped status to the linked service, if any
			if order.ServiceID != nil {
				svcStatus := domain.ServiceStatusForOrder(req.Status)
				if err := tx.Model(&domain.Service{}).Where("id = ?", *order.ServiceID).
					Update("status", svcStatus).Error; err != nil {
					return err // Return error to rollback
				}
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": req.OrderID,  // Order
				"status":   req.Status,   // Target status
				"admin_id": ident.UserID, // Acting admin
				"error":    err.Error(),  // Error message
			}).Error("Order status update failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,     // Order
			"status":   req.Status,   // New status
			"admin_id": ident.UserID, // Acting admin
		}).Info("Order status updated") // Log transition
		// Reload with relations for the response
		var updated domain.Order
		if err := db.Preload("User").Preload("StoreItem").Preload("Service").
			Where("id = ?", order.ID).First(&updated).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": updated})
	}
}
