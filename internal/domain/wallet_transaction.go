package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/datatypes"      // JSON columns
	"gorm.io/gorm"           // GORM ORM library
)

// Wallet transaction types
const (
	TxTopUp = "TOP_UP" // Member funds their balance
)

// WalletTransaction Model: append-only ledger entry. Each row is inserted in
// the same database transaction as the User.balance update it reflects.
type WalletTransaction struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"` // Primary key (UUID)
	UserID      string         `gorm:"size:36;index" json:"userId"`  // Owning user
	Type        string         `gorm:"size:32" json:"type"`          // Transaction type: TOP_UP
	Amount      int64          `gorm:"not null" json:"amount"`       // Amount in minor currency units
	Balance     int64          `gorm:"not null" json:"balance"`      // Balance snapshot after applying
	Description string         `json:"description"`                  // Human-readable description
	Metadata    datatypes.JSON `json:"metadata"`                     // Method and channel details
	CreatedAt   time.Time      `json:"createdAt"`                    // Creation timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
