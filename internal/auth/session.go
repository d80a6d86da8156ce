package auth

import (
	"crypto/rand"     // Cryptographically secure randomness
	"encoding/hex"    // Hex encoding for opaque tokens
	"time"            // Expiry timestamps

	"hoststore/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// NewSessionToken returns a fresh opaque session token. Hex keeps the token
// free of dots, which is what ResolveIdentity dispatches on.
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err // Return error if randomness fails
	}
	return hex.EncodeToString(buf), nil
}

// CreateSession persists a new session row for the user and returns it
func CreateSession(db *gorm.DB, userID string, ttl time.Duration) (*domain.Session, error) {
	token, err := NewSessionToken() // Generate the opaque token
	if err != nil {
		return nil, err
	}
	sess := domain.Session{
		Token:     token,               // Opaque token
		UserID:    userID,              // Owning user
		ExpiresAt: time.Now().Add(ttl), // Expiry timestamp
	}
	// Persist the session row
	if err := db.Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// DeleteSession removes the session row holding the given token
func DeleteSession(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&domain.Session{}).Error
}
