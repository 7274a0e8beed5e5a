package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Match struct {
	gorm.Model

	DonationID  uint           `gorm:"not null;uniqueIndex"` // at most one match per donation
	RecipientID uint           `gorm:"not null;index"`
	DriverID    *uint          `gorm:"index"`
	Status      string         `gorm:"not null;default:pending_pickup"` // "pending_pickup", "picked_up", "delivered"
	Route       datatypes.JSON `gorm:"type:jsonb"`                      // cached directions, null until attached

	// Relationships
	Donation  Donation `gorm:"foreignKey:DonationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipient User     `gorm:"foreignKey:RecipientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Driver    *User    `gorm:"foreignKey:DriverID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
