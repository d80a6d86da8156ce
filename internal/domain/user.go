package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// User roles
const (
	RoleOwner = "OWNER" // Highest privilege, configures payment channels
	RoleAdmin = "ADMIN" // Manages orders
	RoleUser  = "USER"  // Regular member
)

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`      // Primary key (UUID)
	Email     string    `gorm:"uniqueIndex;size:191" json:"email"` // Unique email address
	Name      string    `gorm:"not null" json:"name"`              // Display name
	Password  string    `gorm:"not null" json:"-"`                 // Hashed password, never serialized
	Role      string    `gorm:"size:16;default:USER" json:"role"`  // Role: OWNER, ADMIN or USER
	IsActive  bool      `gorm:"default:true" json:"isActive"`      // Inactive users cannot authenticate
	Balance   int64     `gorm:"not null;default:0" json:"balance"` // Wallet balance in minor currency units
	Avatar    *string   `json:"avatar"`                            // Avatar data URL, nullable
	CreatedAt time.Time `json:"createdAt"`                         // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt"`                         // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
