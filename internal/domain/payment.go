package domain

import (
	"time"

	"github.com/google/uuid" // UUID primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// PaymentSetting Model: owner-scoped configuration of accepted payment
// channels. The unique index on OwnerUserID enforces exactly one row per
// owner; writes go through upsert semantics, never a second insert.
type PaymentSetting struct {
	ID           string           `gorm:"primaryKey;size:36" json:"id"`            // Primary key (UUID)
	OwnerUserID  string           `gorm:"size:36;uniqueIndex" json:"ownerUserId"`  // Owning OWNER user, one row each
	QrisImageURL *string          `json:"qrisImageUrl"`                            // QRIS code image, nullable
	QrisNumber   *string          `json:"qrisNumber"`                              // QRIS merchant number, nullable
	IsActive     bool             `gorm:"default:true" json:"isActive"`            // Master switch for all channels
	BankAccounts []BankAccount    `gorm:"foreignKey:PaymentSettingID" json:"bankAccounts"`    // Child bank channels
	EWallets     []EWalletAccount `gorm:"foreignKey:PaymentSettingID" json:"ewalletAccounts"` // Child e-wallet channels
	CreatedAt    time.Time        `json:"createdAt"`                               // Creation timestamp
	UpdatedAt    time.Time        `json:"updatedAt"`                               // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (p *PaymentSetting) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// BankAccount Model: a bank transfer channel, independently toggleable
type BankAccount struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`           // Primary key (UUID)
	PaymentSettingID string    `gorm:"size:36;index" json:"paymentSettingId"`  // Parent settings row
	BankName         string    `gorm:"size:64" json:"bankName"`                // e.g. BCA, Mandiri
	BankNumber       string    `gorm:"size:64" json:"bankNumber"`              // Account number
	BankAccount      string    `gorm:"size:191" json:"bankAccount"`            // Account holder name
	IsActive         bool      `gorm:"default:true" json:"isActive"`           // Shown to members when true
	CreatedAt        time.Time `json:"createdAt"`                              // Creation timestamp
	UpdatedAt        time.Time `json:"updatedAt"`                              // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (b *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}

// EWalletAccount Model: an e-wallet channel, independently toggleable
type EWalletAccount struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`          // Primary key (UUID)
	PaymentSettingID string    `gorm:"size:36;index" json:"paymentSettingId"` // Parent settings row
	EwalletName      string    `gorm:"size:64" json:"ewalletName"`            // e.g. GoPay, OVO
	EwalletNumber    string    `gorm:"size:64" json:"ewalletNumber"`          // Wallet number
	IsActive         bool      `gorm:"default:true" json:"isActive"`          // Shown to members when true
	CreatedAt        time.Time `json:"createdAt"`                             // Creation timestamp
	UpdatedAt        time.Time `json:"updatedAt"`                             // Last update timestamp
}

// BeforeCreate assigns a UUID primary key when none is set
func (e *EWalletAccount) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString() // Generate a new UUID
	}
	return nil
}
