package auth

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens are self-contained proof of identity for their lifetime; there is no
// server-side revocation list.
const TokenLifetime = 24 * time.Hour

// insecureDevSecret is the signing fallback for local development only.
// Deployments must set JWT_SECRET.
const insecureDevSecret = "supersecret"

var jwtSecret string

func InitJWTSecret() {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = insecureDevSecret
		log.Println("WARNING: JWT_SECRET not set, using insecure development secret")
	}
}

func GenerateJWT(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(TokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return token, nil
}

// ParseIdentity extracts the caller's id and role from verified token claims.
func ParseIdentity(token *jwt.Token) (uint, string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return 0, "", fmt.Errorf("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return 0, "", fmt.Errorf("invalid user ID in token claims")
	}

	role, ok := claims["role"].(string)

	if !ok {
		return 0, "", fmt.Errorf("invalid role in token claims")
	}

	return uint(userIDFloat), role, nil
}
