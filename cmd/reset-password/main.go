package main

import (
	"log"

	"github.com/prishaadesai/jewelry-backend/internal/config"
	"github.com/prishaadesai/jewelry-backend/internal/model"
	"github.com/prishaadesai/jewelry-backend/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Resets the owner account's password back to the configured seed password.
func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// 2. Setup database
	db := database.Connect(cfg.DatabaseURL)

	// 3. Find the owner account
	var user model.User
	if err := db.Where("username = ?", cfg.OwnerUsername).First(&user).Error; err != nil {
		log.Fatalf("❌ User %s not found in database: %v", cfg.OwnerUsername, err)
	}

	// 4. Hash the seed password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.OwnerPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// 5. Update
	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Fatalf("❌ Failed to update password in DB: %v", err)
	}

	log.Printf("✅ Success! Password for %s has been reset", cfg.OwnerUsername)
}
