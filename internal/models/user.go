package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string  `gorm:"not null"`
	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	Role         string  `gorm:"not null"` // "donor" or "recipient"
	Latitude     float64 `gorm:"not null"`
	Longitude    float64 `gorm:"not null"`

	// Relationships
	Donations []Donation `gorm:"foreignKey:DonorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Matches   []Match    `gorm:"foreignKey:RecipientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
