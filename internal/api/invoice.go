package api

import (
	"net/http" // HTTP status codes

	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/invoice"    // PDF rendering
	"hoststore/internal/middleware" // Resolved identity

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// OrderInvoiceHandler renders an order as a PDF invoice. Members can only
// fetch their own orders; admins and owners can fetch any.
func OrderInvoiceHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved caller
		var order domain.Order
		if err := db.Preload("User").Preload("StoreItem").
			Where("id = ?", c.Param("id")).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Ownership or elevated role
		if order.UserID != ident.UserID && ident.Role != domain.RoleAdmin && ident.Role != domain.RoleOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		// An invoice needs the resolved buyer and item
		if order.User == nil || order.StoreItem == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order has no invoiceable item"})
			return
		}
		pdfBytes, err := invoice.Render(invoice.Data{
			Order: order,            // The order
			User:  *order.User,      // Resolved buyer
			Item:  *order.StoreItem, // Purchased item
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,    // Order
				"error":    err.Error(), // Error message
			}).Error("Invoice rendering failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="invoice-`+order.ID+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdfBytes) // Return the document
	}
}
