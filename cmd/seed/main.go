package main

import (
	"encoding/json" // Metadata payloads

	"hoststore/internal/config" // Custom package for configuration
	"hoststore/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/datatypes"          // JSON columns
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Main entry point for seeding demo data: an owner, an admin, a member,
// a handful of catalog items and the owner's payment channels
func main() {
	cfg := config.LoadConfig() // Load configuration
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	owner := seedUser(db, "owner@hoststore.example", "Store Owner", "owner12345", domain.RoleOwner)
	seedUser(db, "admin@hoststore.example", "Store Admin", "admin12345", domain.RoleAdmin)
	seedUser(db, "member@hoststore.example", "Demo Member", "member12345", domain.RoleUser)

	seedItems(db)
	seedPaymentSettings(db, owner)

	logrus.Info("Seeding completed.")
}

// seedUser creates a user if the email is not taken yet
func seedUser(db *gorm.DB, email, name, password, role string) *domain.User {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		return &user // Already seeded
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash password: %v", err)
	}
	user = domain.User{
		Email:    email,        // Login email
		Name:     name,         // Display name
		Password: string(hash), // Hashed password
		Role:     role,         // Seeded role
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		logrus.Fatalf("failed to seed user %s: %v", email, err)
	}
	logrus.WithFields(logrus.Fields{"email": email, "role": role}).Info("User seeded")
	return &user
}

// seedItems creates the demo catalog
func seedItems(db *gorm.DB) {
	meta := func(v any) datatypes.JSON {
		b, _ := json.Marshal(v)
		return datatypes.JSON(b)
	}
	items := []domain.StoreItem{
		{
			Title:       "Premium Game Hosting Package",
			Description: "High-performance game hosting with dedicated resources, SSD storage, and 99.9% uptime guarantee.",
			Price:       150000, // Rp 150.000
			Category:    domain.CategoryHosting,
			IsActive:    true,
			IsFeatured:  true,
			Metadata: meta(map[string]any{
				"features": []string{"4 CPU Cores", "8GB RAM", "100GB SSD Storage", "DDoS Protection", "24/7 Support"},
			}),
		},
		{
			Title:       "Minecraft Server - Basic",
			Description: "Entry-level Minecraft server, instant setup, Singapore datacenter.",
			Price:       50000, // Rp 50.000
			Category:    domain.CategoryServer,
			IsActive:    true,
			Metadata:    meta(map[string]any{"slots": 10, "ram": "2GB"}),
		},
		{
			Title:       "FiveM Mod Pack",
			Description: "Curated FiveM modification bundle with installation guide.",
			Price:       75000, // Rp 75.000
			Category:    domain.CategoryMod,
			IsActive:    true,
		},
		{
			Title:       "Windows RDP - Standard",
			Description: "Remote desktop with dedicated IP, 24/7 uptime.",
			Price:       120000, // Rp 120.000
			Category:    domain.CategoryHosting,
			IsActive:    true,
		},
	}
	for _, item := range items {
		var existing domain.StoreItem
		if err := db.Where("title = ?", item.Title).First(&existing).Error; err == nil {
			continue // Already seeded
		}
		if err := db.Create(&item).Error; err != nil {
			logrus.Fatalf("failed to seed item %s: %v", item.Title, err)
		}
		logrus.WithFields(logrus.Fields{"title": item.Title, "price": item.Price}).Info("Item seeded")
	}
}

// seedPaymentSettings creates the owner's channel configuration
func seedPaymentSettings(db *gorm.DB, owner *domain.User) {
	var settings domain.PaymentSetting
	if err := db.Where("owner_user_id = ?", owner.ID).First(&settings).Error; err == nil {
		return // Already seeded
	}
	qrisNumber := "0812-3456-7890"
	settings = domain.PaymentSetting{
		OwnerUserID: owner.ID,    // One row per owner
		QrisNumber:  &qrisNumber, // QRIS merchant number
		IsActive:    true,
	}
	if err := db.Create(&settings).Error; err != nil {
		logrus.Fatalf("failed to seed payment settings: %v", err)
	}
	banks := []domain.BankAccount{
		{PaymentSettingID: settings.ID, BankName: "BCA", BankNumber: "1234567890", BankAccount: "PT HostStore", IsActive: true},
		{PaymentSettingID: settings.ID, BankName: "Mandiri", BankNumber: "0987654321", BankAccount: "PT HostStore", IsActive: false},
	}
	for _, b := range banks {
		if err := db.Create(&b).Error; err != nil {
			logrus.Fatalf("failed to seed bank account: %v", err)
		}
	}
	wallets := []domain.EWalletAccount{
		{PaymentSettingID: settings.ID, EwalletName: "GoPay", EwalletNumber: "08123456789", IsActive: true},
		{PaymentSettingID: settings.ID, EwalletName: "OVO", EwalletNumber: "08198765432", IsActive: false},
	}
	for _, w := range wallets {
		if err := db.Create(&w).Error; err != nil {
			logrus.Fatalf("failed to seed e-wallet account: %v", err)
		}
	}
	logrus.Info("Payment settings seeded")
}
