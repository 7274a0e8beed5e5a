package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/foodlink-dev/foodlink/db"
	"github.com/foodlink-dev/foodlink/internal/auth"
	"github.com/foodlink-dev/foodlink/internal/models"
	"github.com/foodlink-dev/foodlink/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupRouter wires an isolated in-memory SQLite database into the global DB
// handle and returns a full router. Each test gets its own database.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	auth.InitJWTSecret()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	// Serialize access: in-memory SQLite does not tolerate concurrent writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(&models.User{}, &models.Donation{}, &models.Match{}))

	db.DB = database

	return router.NewRouter()
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return parsed
}

// registerUser registers a user through the API and returns its id and token.
func registerUser(t *testing.T, r http.Handler, name, email, role string) (uint, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "test123",
		"role":     role,
		"location": gin.H{"lat": -17.8292, "lng": 31.0522},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	parsed := decodeBody(t, w)
	user := parsed["user"].(map[string]interface{})
	token := parsed["token"].(string)
	require.NotEmpty(t, token)

	return uint(user["id"].(float64)), token
}

// createDonation creates a donation through the API and returns its id.
func createDonation(t *testing.T, r http.Handler, token, title string, expiry time.Time) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/donations", token, gin.H{
		"title":       title,
		"quantity":    "50kg",
		"address":     "Farm Road, Harare",
		"location":    gin.H{"lat": -17.8292, "lng": 31.0522},
		"expiry_date": expiry.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	parsed := decodeBody(t, w)
	donation := parsed["donation"].(map[string]interface{})
	return uint(donation["id"].(float64))
}
