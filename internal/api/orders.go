package api

import (
	"encoding/json" // Service config payload
	"net/http"      // HTTP status codes

	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/middleware" // Resolved identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/datatypes"          // JSON columns
	"gorm.io/gorm"               // GORM ORM library
)

// CreateOrderRequest is the checkout payload
type CreateOrderRequest struct {
	ItemID        string `json:"itemId" binding:"required"`        // Catalog item reference
	Amount        int64  `json:"amount" binding:"required"`        // Proposed amount, must equal item price
	PaymentMethod string `json:"paymentMethod" binding:"required"` // Channel label chosen at checkout
	Notes         string `json:"notes"`                            // Optional notes
}

// serviceConfig is the back-reference payload stored on a provisioned service
type serviceConfig struct {
	OrderID     string `json:"orderId"`     // Parent order
	StoreItemID string `json:"storeItemId"` // Purchased item
	Notes       string `json:"notes"`       // Checkout notes
	Category    string `json:"category"`    // Item category
}

// CreateOrderHandler creates a PENDING order against a catalog item. For
// HOSTING/SERVER items a paired Service row (status PENDING) is inserted in
// the same database transaction; a partial insert never survives.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved caller
		var req CreateOrderRequest          // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Missing item, amount or payment method
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item ID, amount, and payment method are required"})
			return
		}
		// Validate the item exists and is active
		var item domain.StoreItem
		if err := db.Where("id = ?", req.ItemID).First(&item).Error; err != nil || !item.IsActive {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found or inactive"})
			return
		}
		// The amount must equal the item price exactly; mismatches are
		// rejected, never corrected
		if req.Amount != item.Price {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount does not match item price"})
			return
		}
		order := domain.Order{
			UserID:        ident.UserID,        // Owning user
			StoreItemID:   &item.ID,            // Purchased item
			Amount:        req.Amount,          // Validated amount
			Status:        domain.OrderPending, // Initial status
			PaymentMethod: req.PaymentMethod,   // Chosen channel
		}
		// Order insert and service provisioning are one atomic unit
		err := db.Transaction(func(tx *gorm.DB) error {
			// Insert the order row
			if err := tx.Create(&order).Error; err != nil {
				return err // Return error to rollback
			}
			// Only HOSTING/SERVER categories provision a service
			if !item.Provisions() {
				return nil // Commit with just the order
			}
			cfg, err := json.Marshal(serviceConfig{
				OrderID:     order.ID,     // Back-reference to the order
				StoreItemID: item.ID,      // Back-reference to the item
				Notes:       req.Notes,    // Checkout notes
				Category:    item.Category, // Item category
			})
			if err != nil {
				return err
			}
			svc := domain.Service{
				UserID: ident.UserID,                                 // Owning user
				Name:   item.Title,                                   // Item title
				Type:   domain.ServiceTypeForCategory(item.Category), // RDP or GAME_HOSTING
				Status: domain.ServicePending,                        // Pending until the order completes
				Price:  req.Amount,                                   // Price paid
				Config: datatypes.JSON(cfg),                          // Back-reference payload
			}
			// Insert the service row
			if err := tx.Create(&svc).Error; err != nil {
				return err // Return error to rollback
			}
			// Link the order to its provisioned service
			return tx.Model(&order).Update("service_id", svc.ID).Error
		})
		// Handle transaction result
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": ident.UserID, // Buyer
				"item_id": item.ID,      // Item
				"error":   err.Error(),  // Error message
			}).Error("Order creation failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,     // New order
			"user_id":  ident.UserID, // Buyer
			"amount":   order.Amount, // Amount
			"category": item.Category,
		}).Info("Order created") // Log order creation
		// Return the created order summary
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order": gin.H{
				"id":            order.ID,            // Order ID
				"amount":        order.Amount,        // Amount
				"status":        order.Status,        // PENDING
				"paymentMethod": order.PaymentMethod, // Channel
				"createdAt":     order.CreatedAt,     // Creation timestamp
			},
		})
	}
}

// ListOrdersHandler returns the caller's own orders, newest first
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c)       // Resolved caller
		page, limit, offset := parsePagination(c) // Pagination parameters
		query := db.Model(&domain.Order{}).Where("user_id = ?", ident.UserID)
		if status := c.Query("status"); status != "" && status != "all" {
			query = query.Where("status = ?", status) // Filter by status
		}
		var total int64 // Total order count
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		var orders []domain.Order // Slice to hold orders
		// Fetch paginated orders with item and service info
		if err := query.Preload("StoreItem").Preload("Service").
			Order("created_at desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":     orders,                             // The caller's orders
			"pagination": paginationBody(page, limit, total), // Pagination block
		})
	}
}
