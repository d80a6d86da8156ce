package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTLs

	"hoststore/internal/domain"     // Importing domain models
	"hoststore/internal/middleware" // Resolved identity
	"hoststore/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// GetPaymentSettingsHandler returns the caller's settings row with its bank
// and e-wallet children. Owners see their own row; admins (read-only on this
// route) typically have none and get null.
func GetPaymentSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved caller
		var settings domain.PaymentSetting
		err := db.Preload("BankAccounts").Preload("EWallets").
			Where("owner_user_id = ?", ident.UserID).First(&settings).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// No settings yet; not an error
				c.JSON(http.StatusOK, gin.H{"settings": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// UpsertPaymentSettingsRequest carries the owner's channel configuration
type UpsertPaymentSettingsRequest struct {
	QrisImageURL *string `json:"qrisImageUrl"`                // QRIS code image
	QrisNumber   *string `json:"qrisNumber"`                  // QRIS merchant number
	IsActive     *bool   `json:"isActive" binding:"required"` // Master switch, must be present
}

// UpsertPaymentSettingsHandler creates the owner's settings row when absent
// and updates it otherwise. The unique index on owner_user_id guarantees
// exactly one row per owner no matter how many POSTs arrive.
func UpsertPaymentSettingsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c)   // Resolved owner
		var req UpsertPaymentSettingsRequest  // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isActive field is required"})
			return
		}
		var settings domain.PaymentSetting
		err := db.Where("owner_user_id = ?", ident.UserID).First(&settings).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment settings"})
			return
		}
		if err == gorm.ErrRecordNotFound {
			// Create new settings
			settings = domain.PaymentSetting{
				OwnerUserID:  ident.UserID,     // One row per owner
				QrisImageURL: req.QrisImageURL, // QRIS image
				QrisNumber:   req.QrisNumber,   // QRIS number
				IsActive:     *req.IsActive,    // Master switch
			}
			if err := db.Create(&settings).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment settings"})
				return
			}
		} else {
			// Update existing settings
			updates := map[string]any{
				"qris_image_url": req.QrisImageURL, // QRIS image
				"qris_number":    req.QrisNumber,   // QRIS number
				"is_active":      *req.IsActive,    // Master switch
			}
			if err := db.Model(&settings).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save payment settings"})
				return
			}
		}
		logrus.WithFields(logrus.Fields{
			"owner_id":   ident.UserID, // Acting owner
			"setting_id": settings.ID,  // Settings row
			"is_active":  *req.IsActive,
		}).Info("Payment settings saved") // Log save
		invalidatePaymentMethods(rdb)     // Members see fresh channels
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// CreateBankAccountRequest adds a bank transfer channel
type CreateBankAccountRequest struct {
	BankName    string `json:"bankName" binding:"required"`    // Bank label
	BankNumber  string `json:"bankNumber" binding:"required"`  // Account number
	BankAccount string `json:"bankAccount" binding:"required"` // Account holder name
}

// CreateBankAccountHandler adds a bank channel under the owner's settings
func CreateBankAccountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved owner
		var req CreateBankAccountRequest    // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bank name, number and account are required"})
			return
		}
		// Channels hang off an existing settings row
		var settings domain.PaymentSetting
		if err := db.Where("owner_user_id = ?", ident.UserID).First(&settings).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment settings not found"})
			return
		}
		bank := domain.BankAccount{
			PaymentSettingID: settings.ID,     // Parent settings row
			BankName:         req.BankName,    // Bank label
			BankNumber:       req.BankNumber,  // Account number
			BankAccount:      req.BankAccount, // Holder name
			IsActive:         true,            // Active on creation
		}
		if err := db.Create(&bank).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
			return
		}
		invalidatePaymentMethods(rdb) // Members see fresh channels
		c.JSON(http.StatusCreated, gin.H{"bankAccount": bank})
	}
}

// ToggleActiveRequest flips a channel's visibility
type ToggleActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"` // Must be present
}

// ToggleBankAccountHandler toggles a bank channel's active flag
func ToggleBankAccountHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved owner
		var req ToggleActiveRequest         // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isActive field is required"})
			return
		}
		// Scope the lookup to the caller's own settings
		var settings domain.PaymentSetting
		if err := db.Where("owner_user_id = ?", ident.UserID).First(&settings).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment settings not found"})
			return
		}
		var bank domain.BankAccount
		if err := db.Where("id = ? AND payment_setting_id = ?", c.Param("id"), settings.ID).
			First(&bank).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
			return
		}
		if err := db.Model(&bank).Update("is_active", *req.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bank account"})
			return
		}
		invalidatePaymentMethods(rdb) // Members see fresh channels
		c.JSON(http.StatusOK, gin.H{"bankAccount": bank})
	}
}

// CreateEWalletRequest adds an e-wallet channel
type CreateEWalletRequest struct {
	EwalletName   string `json:"ewalletName" binding:"required"`   // Wallet label
	EwalletNumber string `json:"ewalletNumber" binding:"required"` // Wallet number
}

// CreateEWalletHandler adds an e-wallet channel under the owner's settings
func CreateEWalletHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved owner
		var req CreateEWalletRequest        // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "E-wallet name and number are required"})
			return
		}
		var settings domain.PaymentSetting
		if err := db.Where("owner_user_id = ?", ident.UserID).First(&settings).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment settings not found"})
			return
		}
		wallet := domain.EWalletAccount{
			PaymentSettingID: settings.ID,       // Parent settings row
			EwalletName:      req.EwalletName,   // Wallet label
			EwalletNumber:    req.EwalletNumber, // Wallet number
			IsActive:         true,              // Active on creation
		}
		if err := db.Create(&wallet).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create e-wallet account"})
			return
		}
		invalidatePaymentMethods(rdb) // Members see fresh channels
		c.JSON(http.StatusCreated, gin.H{"ewalletAccount": wallet})
	}
}

// ToggleEWalletHandler toggles an e-wallet channel's active flag
func ToggleEWalletHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.IdentityFrom(c) // Resolved owner
		var req ToggleActiveRequest         // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "isActive field is required"})
			return
		}
		var settings domain.PaymentSetting
		if err := db.Where("owner_user_id = ?", ident.UserID).First(&settings).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment settings not found"})
			return
		}
		var wallet domain.EWalletAccount
		if err := db.Where("id = ? AND payment_setting_id = ?", c.Param("id"), settings.ID).
			First(&wallet).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "E-wallet account not found"})
			return
		}
		if err := db.Model(&wallet).Update("is_active", *req.IsActive).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update e-wallet account"})
			return
		}
		invalidatePaymentMethods(rdb) // Members see fresh channels
		c.JSON(http.StatusOK, gin.H{"ewalletAccount": wallet})
	}
}

// PaymentMethod is a single channel advertised to members at checkout
type PaymentMethod struct {
	Type   string `json:"type"`   // QRIS, BANK or EWALLET
	Name   string `json:"name"`   // Channel label
	Number string `json:"number"` // Account / merchant number
	Holder string `json:"holder,omitempty"` // Account holder, banks only
	Image  string `json:"image,omitempty"`  // QRIS image URL
}

// ListPaymentMethodsHandler returns the active channels members can pay
// through: QRIS when configured, plus every active bank and e-wallet row
// under active settings
func ListPaymentMethodsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Try the cache first
		if rdb != nil {
			var cached []PaymentMethod
			if found, err := utils.GetCache(ctx, rdb, utils.PaymentMethodsCacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{"methods": cached, "cached": true})
				return
			}
		}
		// Active settings rows with children
		var settings []domain.PaymentSetting
		if err := db.Preload("BankAccounts").Preload("EWallets").
			Where("is_active = ?", true).Find(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		methods := make([]PaymentMethod, 0) // Never null in the response
		for _, s := range settings {
			// QRIS counts as a channel when a number is configured
			if s.QrisNumber != nil && *s.QrisNumber != "" {
				m := PaymentMethod{Type: "QRIS", Name: "QRIS", Number: *s.QrisNumber}
				if s.QrisImageURL != nil {
					m.Image = *s.QrisImageURL
				}
				methods = append(methods, m)
			}
			// Active bank channels
			for _, b := range s.BankAccounts {
				if b.IsActive {
					methods = append(methods, PaymentMethod{
						Type:   "BANK",
						Name:   b.BankName,    // Bank label
						Number: b.BankNumber,  // Account number
						Holder: b.BankAccount, // Holder name
					})
				}
			}
			// Active e-wallet channels
			for _, w := range s.EWallets {
				if w.IsActive {
					methods = append(methods, PaymentMethod{
						Type:   "EWALLET",
						Name:   w.EwalletName,   // Wallet label
						Number: w.EwalletNumber, // Wallet number
					})
				}
			}
		}
		// Cache the result, best effort
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, utils.PaymentMethodsCacheKey, methods, 60*time.Second)
		}
		c.JSON(http.StatusOK, gin.H{"methods": methods, "cached": false})
	}
}

// invalidatePaymentMethods drops the member-facing channel cache after any
// settings write
func invalidatePaymentMethods(rdb *redis.Client) {
	if rdb != nil {
		_ = utils.DeleteCache(context.Background(), rdb, utils.PaymentMethodsCacheKey)
	}
}
