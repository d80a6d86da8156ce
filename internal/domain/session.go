package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Session Model: an opaque login token persisted per user
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`      // Primary key (UUID)
	Token     string    `gorm:"uniqueIndex;size:191" json:"token"` // Opaque session token
	UserID    string    `gorm:"size:36;index" json:"userId"`       // Foreign key to User
	ExpiresAt time.Time `json:"expiresAt"`                         // Expiry; checked on resolve, never pruned
	CreatedAt time.Time `json:"createdAt"`                         // Creation timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// Expired reports whether the session is past its expiry timestamp
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
