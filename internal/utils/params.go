package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetDonationID(ctx *gin.Context) (uint64, error) {
	donationIDStr := ctx.Param("donation_id")

	if donationIDStr == "" {
		return 0, errors.New("donation ID not found")
	}

	donationID, err := strconv.ParseUint(donationIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("invalid donation ID")
	}

	return donationID, nil
}

func GetMatchID(ctx *gin.Context) (uint64, error) {
	matchIDStr := ctx.Param("match_id")

	if matchIDStr == "" {
		return 0, errors.New("match ID not found")
	}

	matchID, err := strconv.ParseUint(matchIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("invalid match ID")
	}

	return matchID, nil
}
