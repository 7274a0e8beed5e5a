package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/foodlink-dev/foodlink/db"
	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/foodlink-dev/foodlink/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateMatchStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending_pickup picked_up delivered"`
}

var errDonationNotAvailable = errors.New("donation not available")

func matchResponse(match models.Match, includeDonation bool, includeRecipient bool) types.MatchResponse {
	resp := types.MatchResponse{
		ID:        match.ID,
		Status:    match.Status,
		CreatedAt: match.CreatedAt,
		UpdatedAt: match.UpdatedAt,
	}

	if includeDonation {
		donation := donationResponse(match.Donation, false, false)
		resp.Donation = &donation
	}

	if includeRecipient {
		resp.Recipient = &types.UserSummary{
			ID:    match.Recipient.ID,
			Name:  match.Recipient.Name,
			Email: match.Recipient.Email,
		}
	}

	if len(match.Route) > 0 {
		var route types.RouteSummary
		if err := json.Unmarshal(match.Route, &route); err == nil {
			resp.Route = &route
		}
	}

	return resp
}

// AcceptDonation creates a match for an available donation and flips the
// donation to accepted. Both writes run in one transaction: a conditional
// status update guards the race against other acceptors and direct claims.
func AcceptDonation(ctx *gin.Context) {
	donationID, err := utils.GetDonationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipientID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	match := models.Match{
		DonationID:  uint(donationID),
		RecipientID: recipientID,
		Status:      types.MatchPendingPickup,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Donation{}).
			Where("id = ? AND status = ?", donationID, types.DonationAvailable).
			Update("status", types.DonationAccepted)

		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return errDonationNotAvailable
		}

		return tx.Create(&match).Error
	})

	if err != nil {
		if errors.Is(err, errDonationNotAvailable) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Donation not available"})
			return
		}
		log.Printf("Failed to accept donation %d: %v", donationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var donation models.Donation
	if err := db.DB.First(&donation, donationID).Error; err == nil {
		BroadcastListingEvent(ListingAccepted, donation)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Donation accepted successfully",
		"match":   matchResponse(match, false, false),
	})
}

// ListRecipientMatches returns the caller's matches with donation and
// recipient summaries expanded.
func ListRecipientMatches(ctx *gin.Context) {
	recipientID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var matches []models.Match

	err = db.DB.
		Preload("Donation").
		Preload("Recipient").
		Where("recipient_id = ?", recipientID).
		Find(&matches).Error

	if err != nil {
		log.Printf("Failed to list matches: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve matches"})
		return
	}

	response := make([]types.MatchResponse, 0, len(matches))

	for _, match := range matches {
		response = append(response, matchResponse(match, true, true))
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateMatchStatus overwrites a match's status. Any of the known statuses is
// accepted in any order; only unknown values are rejected.
func UpdateMatchStatus(ctx *gin.Context) {
	matchID, err := utils.GetMatchID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateMatchStatusRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var match models.Match

	if err := db.DB.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		log.Printf("Failed to fetch match %d: %v", matchID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	match.Status = body.Status

	if err := db.DB.Save(&match).Error; err != nil {
		log.Printf("Failed to update match %d: %v", matchID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update match"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
		"match":   matchResponse(match, false, false),
	})
}
