package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/datatypes"      // JSON columns
	"gorm.io/gorm"           // GORM ORM library
)

// Service statuses, kept in lockstep with the parent order
const (
	ServicePending   = "PENDING"   // Awaiting payment / provisioning
	ServiceActive    = "ACTIVE"    // Running
	ServiceSuspended = "SUSPENDED" // Stopped after a refund
	ServiceCancelled = "CANCELLED" // Stopped after cancellation
)

// Service types, derived from the purchased item's category
const (
	ServiceTypeRDP         = "RDP"          // HOSTING category items
	ServiceTypeGameHosting = "GAME_HOSTING" // SERVER category items
)

// Service Model: a provisioned resource tied 1:1 to a qualifying order
type Service struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`        // Primary key (UUID)
	UserID    string         `gorm:"size:36;index" json:"userId"`         // Owning user
	Name      string         `gorm:"not null" json:"name"`                // Display name (item title)
	Type      string         `gorm:"size:32" json:"type"`                 // RDP or GAME_HOSTING
	Status    string         `gorm:"size:16;default:PENDING" json:"status"` // Lockstep with parent order
	Price     int64          `gorm:"not null" json:"price"`               // Price in minor currency units
	Config    datatypes.JSON `json:"config"`                              // Connection / provisioning payload
	ExpiresAt *time.Time     `json:"expiresAt"`                           // Expiry, nullable
	CreatedAt time.Time      `json:"createdAt"`                           // Creation timestamp
	UpdatedAt time.Time      `json:"updatedAt"`                           // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// ServiceTypeForCategory maps a store item category to the service type it
// provisions. Only HOSTING and SERVER categories provision anything.
func ServiceTypeForCategory(category string) string {
	if category == CategoryHosting {
		return ServiceTypeRDP
	}
	return ServiceTypeGameHosting
}
