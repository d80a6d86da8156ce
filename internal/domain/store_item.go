package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/datatypes"      // JSON columns
	"gorm.io/gorm"           // GORM ORM library
)

// Store item categories
const (
	CategoryMod     = "MOD"     // Game modifications
	CategoryGame    = "GAME"    // Game licenses
	CategoryHosting = "HOSTING" // RDP / panel hosting, provisions a Service
	CategoryServer  = "SERVER"  // Game server hosting, provisions a Service
	CategoryLicense = "LICENSE" // Software licenses
)

// StoreItem Model: a purchasable SKU with fixed price and category
type StoreItem struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`      // Primary key (UUID)
	Title       string         `gorm:"uniqueIndex;size:191" json:"title"` // Unique title
	Description string         `json:"description"`                       // Free-form description
	Price       int64          `gorm:"not null" json:"price"`             // Price in minor currency units
	Category    string         `gorm:"size:32;index" json:"category"`     // Category constant
	IsActive    bool           `gorm:"default:true" json:"isActive"`      // Inactive items cannot be ordered
	IsFeatured  bool           `gorm:"default:false" json:"isFeatured"`   // Highlighted on the storefront
	Metadata    datatypes.JSON `json:"metadata"`                          // Free-form metadata (specs, limits)
	CreatedAt   time.Time      `json:"createdAt"`                         // Creation timestamp
	UpdatedAt   time.Time      `json:"updatedAt"`                         // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (i *StoreItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// Provisions reports whether purchasing this item creates a Service record
func (i *StoreItem) Provisions() bool {
	return i.Category == CategoryHosting || i.Category == CategoryServer
}
