package types

import "time"

type Location struct {
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// UserResponse is the public profile shape. The password hash is never serialized.
type UserResponse struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Location Location `json:"location"`
}

// UserSummary annotates records with a user's public name/email only.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DonationResponse struct {
	ID          uint         `json:"id"`
	DonorID     uint         `json:"donor_id"`
	Donor       *UserSummary `json:"donor,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	Quantity    string       `json:"quantity"`
	Location    Location     `json:"location"`
	ExpiryDate  time.Time    `json:"expiry_date"`
	Status      string       `json:"status"`
	ClaimCode   string       `json:"claim_code,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RouteSummary is the cached directions blob stored on a match.
type RouteSummary struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	Polyline    string  `json:"polyline"`
}

type MatchResponse struct {
	ID        uint              `json:"id"`
	Status    string            `json:"status"`
	Donation  *DonationResponse `json:"donation,omitempty"`
	Recipient *UserSummary      `json:"recipient,omitempty"`
	Route     *RouteSummary     `json:"route,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
