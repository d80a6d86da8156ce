package api

import (
	"context"       // Context for Redis operations
	"encoding/json" // Metadata payloads
	"net/http"      // HTTP status codes
	"time"          // Cache TTLs

	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/middleware" // Resolved identity
	"hoststore/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/datatypes"            // JSON columns
	"gorm.io/gorm"                 // GORM ORM library
)

// TopUpRequest funds the caller's balance
type TopUpRequest struct {
	Amount        int64  `json:"amount"`        // Amount in minor currency units, must be positive
	PaymentMethod string `json:"paymentMethod"` // Channel label
}

// TopUpHandler credits the caller's balance and appends a ledger entry. The
// balance is incremented relative to its stored value inside the same
// database transaction that inserts the ledger row, so two concurrent
// top-ups on one user can never both read the same balance and drop an
// increment. NOT idempotent: a retried request credits twice.
func TopUpHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved caller
		var req TopUpRequest                // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			// Non-positive amounts mutate nothing
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		if req.PaymentMethod == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment method is required"})
			return
		}
		var entry domain.WalletTransaction // The ledger row
		var newBalance int64               // Balance snapshot after applying
		err := db.Transaction(func(tx *gorm.DB) error {
			// Relative increment; never read-then-write from Go
			res := tx.Model(&domain.User{}).Where("id = ?", ident.UserID).
				Update("balance", gorm.Expr("balance + ?", req.Amount))
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound // User row is gone
			}
			// Re-read inside the transaction for the ledger snapshot; the
			// row lock taken by the update holds until commit
			var user domain.User
			if err := tx.First(&user, "id = ?", ident.UserID).Error; err != nil {
				return err
			}
			newBalance = user.Balance
			meta, err := json.Marshal(map[string]string{"paymentMethod": req.PaymentMethod})
			if err != nil {
				return err
			}
			entry = domain.WalletTransaction{
				UserID:      ident.UserID,                      // Owning user
				Type:        domain.TxTopUp,                    // TOP_UP
				Amount:      req.Amount,                        // Credited amount
				Balance:     newBalance,                        // Snapshot after applying
				Description: "Top up via " + req.PaymentMethod, // Human-readable description
				Metadata:    datatypes.JSON(meta),              // Method metadata
			}
			// Append the ledger row
			return tx.Create(&entry).Error
		})
		// Handle transaction result
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": ident.UserID, // User ID
				"amount":  req.Amount,   // Top-up amount
				"error":   err.Error(),  // Error message
			}).Error("Top up failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process top up"})
			return
		}
		// Log successful top-up
		logrus.WithFields(logrus.Fields{
			"user_id": ident.UserID,   // User ID
			"amount":  req.Amount,     // Top-up amount
			"balance": newBalance,     // New balance
			"type":    domain.TxTopUp, // Transaction type
		}).Info("Top up transaction")
		// Invalidate cached ledger pages for this user
		if rdb != nil {
			utils.InvalidateTxHistory(context.Background(), rdb, ident.UserID)
		}
		// Return the ledger entry and new balance
		c.JSON(http.StatusOK, gin.H{
			"message":     "Top up successful",
			"transaction": entry,      // Ledger row
			"newBalance":  newBalance, // Balance after applying
		})
	}
}

// ListWalletTransactionsHandler returns the caller's ledger, newest first
func ListWalletTransactionsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c)       // Resolved caller
		page, limit, offset := parsePagination(c) // Pagination parameters
		ctx := context.Background()               // Context for Redis operations
		var cacheKey string
		// Try the cache first; the key carries the user's current version so
		// pages written before the last top-up can never be served
		if rdb != nil {
			version := utils.TxHistoryVersion(ctx, rdb, ident.UserID)
			cacheKey = utils.TxHistoryCacheKey(ident.UserID, version, page, limit)
			var cached struct {
				Transactions []domain.WalletTransaction `json:"transactions"` // Ledger rows
				Pagination   gin.H                      `json:"pagination"`   // Pagination block
			}
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"transactions": cached.Transactions, // Cached ledger rows
					"pagination":   cached.Pagination,   // Pagination block
					"cached":       true,                // Served from cache
				})
				return
			}
		}
		var total int64 // Total ledger rows
		if err := db.Model(&domain.WalletTransaction{}).Where("user_id = ?", ident.UserID).
			Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		var txs []domain.WalletTransaction // Slice to hold ledger rows
		// Fetch paginated ledger rows
		if err := db.Where("user_id = ?", ident.UserID).
			Order("created_at desc").Offset(offset).Limit(limit).Find(&txs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		resp := gin.H{
			"transactions": txs,                                // Ledger rows
			"pagination":   paginationBody(page, limit, total), // Pagination block
			"cached":       false,                              // Not from cache
		}
		// Cache the result, best effort
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, resp, 60*time.Second)
		}
		c.JSON(http.StatusOK, resp) // Return the ledger page
	}
}
