package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/foodlink-dev/foodlink/db"
	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/foodlink-dev/foodlink/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateDonationRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Quantity    string          `json:"quantity" binding:"required"`
	Location    LocationRequest `json:"location" binding:"required"`
	Address     string          `json:"address"`
	ExpiryDate  time.Time       `json:"expiry_date" binding:"required"`
}

func donationResponse(donation models.Donation, includeDonor bool, includeClaimCode bool) types.DonationResponse {
	resp := types.DonationResponse{
		ID:          donation.ID,
		DonorID:     donation.DonorID,
		Title:       donation.Title,
		Description: donation.Description,
		ImageURL:    donation.ImageURL,
		Quantity:    donation.Quantity,
		Location: types.Location{
			Address: donation.Address,
			Lat:     donation.Latitude,
			Lng:     donation.Longitude,
		},
		ExpiryDate: donation.ExpiryDate,
		Status:     donation.Status,
		CreatedAt:  donation.CreatedAt,
		UpdatedAt:  donation.UpdatedAt,
	}

	if includeClaimCode {
		resp.ClaimCode = donation.ClaimCode
	}

	if includeDonor {
		resp.Donor = &types.UserSummary{
			ID:    donation.Donor.ID,
			Name:  donation.Donor.Name,
			Email: donation.Donor.Email,
		}
	}

	return resp
}

func CreateDonation(ctx *gin.Context) {
	var body CreateDonationRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	claimCode, err := utils.NewClaimCode()

	if err != nil {
		log.Printf("Failed to generate claim code: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	address := body.Address
	if address == "" {
		address = body.Location.Address
	}

	donation := models.Donation{
		DonorID:     userID,
		Title:       body.Title,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		Quantity:    body.Quantity,
		Address:     address,
		Latitude:    *body.Location.Lat,
		Longitude:   *body.Location.Lng,
		ExpiryDate:  body.ExpiryDate,
		Status:      types.DonationAvailable,
		ClaimCode:   claimCode,
	}

	if err := db.DB.Create(&donation).Error; err != nil {
		log.Printf("Failed to create donation: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		return
	}

	BroadcastListingEvent(ListingCreated, donation)

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Donation created successfully",
		"donation": donationResponse(donation, false, true),
	})
}

// ListAvailableDonations returns donations that are still available and not
// expired, each annotated with the donor's public name/email.
func ListAvailableDonations(ctx *gin.Context) {
	var donations []models.Donation

	err := db.DB.
		Preload("Donor").
		Where("status = ? AND expiry_date > ?", types.DonationAvailable, time.Now()).
		Find(&donations).Error

	if err != nil {
		log.Printf("Failed to list donations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	response := make([]types.DonationResponse, 0, len(donations))

	for _, donation := range donations {
		response = append(response, donationResponse(donation, true, false))
	}

	ctx.JSON(http.StatusOK, response)
}

func ListDonorDonations(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var donations []models.Donation

	if err := db.DB.Where("donor_id = ?", userID).Find(&donations).Error; err != nil {
		log.Printf("Failed to list donor donations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	response := make([]types.DonationResponse, 0, len(donations))

	for _, donation := range donations {
		response = append(response, donationResponse(donation, false, true))
	}

	ctx.JSON(http.StatusOK, response)
}

// ClaimDonation flips an available donation to claimed. The transition is a
// single conditional UPDATE keyed on the pre-read status, so of two
// simultaneous claimants exactly one sees RowsAffected == 1.
func ClaimDonation(ctx *gin.Context) {
	donationID, err := utils.GetDonationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := db.DB.Model(&models.Donation{}).
		Where("id = ? AND status = ?", donationID, types.DonationAvailable).
		Update("status", types.DonationClaimed)

	if result.Error != nil {
		log.Printf("Failed to claim donation %d: %v", donationID, result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var donation models.Donation

	if result.RowsAffected == 0 {
		// Lost the race or the id never existed; distinguish for the caller.
		if err := db.DB.First(&donation, donationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
				return
			}
			log.Printf("Failed to fetch donation %d: %v", donationID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Donation already claimed"})
		return
	}

	if err := db.DB.First(&donation, donationID).Error; err != nil {
		log.Printf("Failed to fetch claimed donation %d: %v", donationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastListingEvent(ListingClaimed, donation)

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Donation claimed successfully",
		"donation": donationResponse(donation, false, true),
	})
}

func DeleteDonation(ctx *gin.Context) {
	donationID, err := utils.GetDonationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var donation models.Donation

	if err := db.DB.First(&donation, donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		log.Printf("Failed to fetch donation %d: %v", donationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if donation.DonorID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return
	}

	if err := db.DB.Delete(&donation).Error; err != nil {
		log.Printf("Failed to delete donation %d: %v", donationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete donation"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Donation deleted successfully"})
}
