package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/foodlink-dev/foodlink/db"
	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/services"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/foodlink-dev/foodlink/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetRouteForMatch returns the driving route between a match's donation and
// recipient. The route is fetched once from the directions provider and kept
// on the match; later calls return the stored copy.
func GetRouteForMatch(ctx *gin.Context) {
	matchID, err := utils.GetMatchID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var match models.Match

	err = db.DB.
		Preload("Donation").
		Preload("Recipient").
		First(&match, matchID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		log.Printf("Failed to fetch match %d: %v", matchID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if match.Donation.ID == 0 || match.Recipient.ID == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}

	var route types.RouteSummary

	if len(match.Route) > 0 && json.Unmarshal(match.Route, &route) == nil {
		routeResponse(ctx, match, route)
		return
	}

	route, err = services.FetchDrivingRoute(
		services.Coordinate{Lat: match.Donation.Latitude, Lng: match.Donation.Longitude},
		services.Coordinate{Lat: match.Recipient.Latitude, Lng: match.Recipient.Longitude},
	)

	if err != nil {
		log.Printf("Directions lookup failed for match %d: %v", matchID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch route"})
		return
	}

	blob, err := json.Marshal(route)

	if err != nil {
		log.Printf("Failed to marshal route for match %d: %v", matchID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&match).Update("route", datatypes.JSON(blob)).Error; err != nil {
		log.Printf("Failed to store route for match %d: %v", matchID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	routeResponse(ctx, match, route)
}

func routeResponse(ctx *gin.Context, match models.Match, route types.RouteSummary) {
	ctx.JSON(http.StatusOK, gin.H{
		"matchId": match.ID,
		"donationLocation": types.Location{
			Address: match.Donation.Address,
			Lat:     match.Donation.Latitude,
			Lng:     match.Donation.Longitude,
		},
		"recipientLocation": types.Location{
			Lat: match.Recipient.Latitude,
			Lng: match.Recipient.Longitude,
		},
		"route": route,
	})
}
