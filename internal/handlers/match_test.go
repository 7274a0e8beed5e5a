package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/foodlink-dev/foodlink/db"
	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptDonation(t *testing.T, r http.Handler, token string, donationID uint) *map[string]interface{} {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/matches/%d/accept", donationID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	parsed := decodeBody(t, w)
	match := parsed["match"].(map[string]interface{})
	return &match
}

func TestAcceptDonation(t *testing.T) {
	r := setupRouter(t)

	_, donorToken := registerUser(t, r, "Alice Farmer", "alice@example.com", "donor")
	recipientID, recipientToken := registerUser(t, r, "Helping Hands", "charity@example.com", "recipient")

	donationID := createDonation(t, r, donorToken, "Tomatoes", time.Now().Add(24*time.Hour))

	match := *acceptDonation(t, r, recipientToken, donationID)
	assert.Equal(t, "pending_pickup", match["status"])

	// The donation flipped to accepted in the same operation.
	var donation models.Donation
	require.NoError(t, db.DB.First(&donation, donationID).Error)
	assert.Equal(t, types.DonationAccepted, donation.Status)

	// Exactly one match exists.
	var count int64
	require.NoError(t, db.DB.Model(&models.Match{}).Where("donation_id = ?", donationID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.Match
	require.NoError(t, db.DB.Where("donation_id = ?", donationID).First(&stored).Error)
	assert.Equal(t, recipientID, stored.RecipientID)
}

func TestAcceptUnavailableDonation(t *testing.T) {
	r := setupRouter(t)

	_, donorToken := registerUser(t, r, "Alice Farmer", "alice@example.com", "donor")
	_, recipientToken := registerUser(t, r, "Helping Hands", "charity@example.com", "recipient")

	donationID := createDonation(t, r, donorToken, "Tomatoes", time.Now().Add(24*time.Hour))
	acceptDonation(t, r, recipientToken, donationID)

	// Accepting again fails and creates no second match.
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/matches/%d/accept", donationID), recipientToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Donation not available")

	var count int64
	require.NoError(t, db.DB.Model(&models.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Missing donations get the same answer.
	w = doJSON(t, r, http.MethodPost, "/api/matches/99999/accept", recipientToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Donors cannot accept at all.
	otherID := createDonation(t, r, donorToken, "Pears", time.Now().Add(24*time.Hour))
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/matches/%d/accept", otherID), donorToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListRecipientMatches(t *testing.T) {
	r := setupRouter(t)

	_, donorToken := registerUser(t, r, "Alice Farmer", "alice@example.com", "donor")
	_, recipientToken := registerUser(t, r, "Helping Hands", "charity@example.com", "recipient")
	_, bystanderToken := registerUser(t, r, "Other Charity", "other@example.com", "recipient")

	donationID := createDonation(t, r, donorToken, "Tomatoes", time.Now().Add(24*time.Hour))
	acceptDonation(t, r, recipientToken, donationID)

	w := doJSON(t, r, http.MethodGet, "/api/matches", recipientToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var matches []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	require.Len(t, matches, 1)

	donation := matches[0]["donation"].(map[string]interface{})
	assert.Equal(t, "Tomatoes", donation["title"])
	assert.Equal(t, "accepted", donation["status"])

	recipient := matches[0]["recipient"].(map[string]interface{})
	assert.Equal(t, "Helping Hands", recipient["name"])
	assert.Equal(t, "charity@example.com", recipient["email"])

	// Another recipient sees nothing.
	w = doJSON(t, r, http.MethodGet, "/api/matches", bystanderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	assert.Len(t, matches, 0)
}

func TestUpdateMatchStatus(t *testing.T) {
	r := setupRouter(t)

	_, donorToken := registerUser(t, r, "Alice Farmer", "alice@example.com", "donor")
	_, recipientToken := registerUser(t, r, "Helping Hands", "charity@example.com", "recipient")

	donationID := createDonation(t, r, donorToken, "Tomatoes", time.Now().Add(24*time.Hour))
	match := *acceptDonation(t, r, recipientToken, donationID)
	matchID := uint(match["id"].(float64))

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/matches/%d", matchID), recipientToken, gin.H{
		"status": "picked_up",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	parsed := decodeBody(t, w)
	updated := parsed["match"].(map[string]interface{})
	assert.Equal(t, "picked_up", updated["status"])

	// Unknown match id.
	w = doJSON(t, r, http.MethodPatch, "/api/matches/99999", recipientToken, gin.H{"status": "delivered"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown status values are rejected.
	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/matches/%d", matchID), recipientToken, gin.H{
		"status": "teleported",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
