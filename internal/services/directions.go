package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/foodlink-dev/foodlink/internal/types"
)

// DirectionsURL is the OpenRouteService driving-car endpoint. Overridable for
// tests.
var DirectionsURL = "https://api.openrouteservice.org/v2/directions/driving-car"

var directionsClient = &http.Client{
	Timeout: 10 * time.Second,
}

type Coordinate struct {
	Lat float64
	Lng float64
}

type directionsRequest struct {
	// Coordinates are [lng, lat] pairs, start then end.
	Coordinates [][2]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
		Geometry string `json:"geometry"` // encoded polyline
	} `json:"routes"`
}

// FetchDrivingRoute asks the directions provider for a driving route from
// start to end and normalizes the result to kilometers/minutes. The call is
// bounded by the client timeout and is not retried.
func FetchDrivingRoute(start, end Coordinate) (types.RouteSummary, error) {
	apiKey := os.Getenv("ORS_API_KEY")

	if apiKey == "" {
		return types.RouteSummary{}, fmt.Errorf("ORS_API_KEY is not set")
	}

	payload := directionsRequest{
		Coordinates: [][2]float64{
			{start.Lng, start.Lat},
			{end.Lng, end.Lat},
		},
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return types.RouteSummary{}, fmt.Errorf("failed to marshal directions request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, DirectionsURL, bytes.NewBuffer(body))

	if err != nil {
		return types.RouteSummary{}, fmt.Errorf("failed to build directions request: %w", err)
	}

	req.Header.Set("Authorization", apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := directionsClient.Do(req)

	if err != nil {
		return types.RouteSummary{}, fmt.Errorf("failed to call directions provider: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return types.RouteSummary{}, fmt.Errorf("directions provider returned status %d", resp.StatusCode)
	}

	var parsed directionsResponse

	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return types.RouteSummary{}, fmt.Errorf("failed to decode directions response: %w", err)
	}

	if len(parsed.Routes) == 0 {
		return types.RouteSummary{}, fmt.Errorf("directions provider returned no routes")
	}

	route := parsed.Routes[0]

	return types.RouteSummary{
		DistanceKm:  route.Summary.Distance / 1000,
		DurationMin: route.Summary.Duration / 60,
		Polyline:    route.Geometry,
	}, nil
}
