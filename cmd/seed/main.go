package main

import (
	"log"
	"os"
	"time"

	"github.com/foodlink-dev/foodlink/db"
	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/foodlink-dev/foodlink/internal/utils"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo donor, recipient, donation, and pending match. Wipes existing
// rows first.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.DB.Exec("DELETE FROM matches").Error; err != nil {
		log.Fatalf("Failed to clear matches: %v", err)
	}
	if err := db.DB.Exec("DELETE FROM donations").Error; err != nil {
		log.Fatalf("Failed to clear donations: %v", err)
	}
	if err := db.DB.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	log.Println("Cleared old data")

	passwordHash, err := bcrypt.GenerateFromPassword([]byte("test123"), bcrypt.DefaultCost)

	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	donor := models.User{
		Name:         "Alice Farmer",
		Email:        "alice@example.com",
		PasswordHash: string(passwordHash),
		Role:         types.RoleDonor,
		Latitude:     -17.8292,
		Longitude:    31.0522,
	}

	recipient := models.User{
		Name:         "Helping Hands Charity",
		Email:        "charity@example.com",
		PasswordHash: string(passwordHash),
		Role:         types.RoleRecipient,
		Latitude:     -17.8252,
		Longitude:    31.0335,
	}

	if err := db.DB.Create(&donor).Error; err != nil {
		log.Fatalf("Failed to create donor: %v", err)
	}
	if err := db.DB.Create(&recipient).Error; err != nil {
		log.Fatalf("Failed to create recipient: %v", err)
	}
	log.Println("Created demo users")

	claimCode, err := utils.NewClaimCode()

	if err != nil {
		log.Fatalf("Failed to generate claim code: %v", err)
	}

	donation := models.Donation{
		DonorID:    donor.ID,
		Title:      "50kg Tomatoes",
		Quantity:   "50kg",
		Address:    "Farm Road, Harare",
		Latitude:   -17.8292,
		Longitude:  31.0522,
		ExpiryDate: time.Now().Add(48 * time.Hour),
		Status:     types.DonationAccepted,
		ClaimCode:  claimCode,
	}

	if err := db.DB.Create(&donation).Error; err != nil {
		log.Fatalf("Failed to create donation: %v", err)
	}
	log.Println("Created demo donation")

	match := models.Match{
		DonationID:  donation.ID,
		RecipientID: recipient.ID,
		Status:      types.MatchPendingPickup,
	}

	if err := db.DB.Create(&match).Error; err != nil {
		log.Fatalf("Failed to create match: %v", err)
	}
	log.Println("Created demo match")

	log.Printf("Seed complete: donor=%d recipient=%d donation=%d match=%d", donor.ID, recipient.ID, donation.ID, match.ID)
}
