package models

import (
	"time"

	"gorm.io/gorm"
)

type Donation struct {
	gorm.Model

	DonorID     uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	ImageURL    string
	Quantity    string `gorm:"not null"` // free-text magnitude, e.g. "50kg"
	Address     string
	Latitude    float64   `gorm:"not null"`
	Longitude   float64   `gorm:"not null"`
	ExpiryDate  time.Time `gorm:"not null;index"`
	Status      string    `gorm:"not null;default:available"` // "available", "claimed", "accepted"
	ClaimCode   string    `gorm:"not null"`

	// Relationships
	Donor User   `gorm:"foreignKey:DonorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Match *Match `gorm:"foreignKey:DonationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
