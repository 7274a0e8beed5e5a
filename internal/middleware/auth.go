package middleware

import (
	"net/http"
	"strings"

	"github.com/foodlink-dev/foodlink/internal/auth"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// AuthMiddleware resolves the bearer token to a caller identity. The token is
// stateless: verified claims are trusted as-is, no user lookup is performed.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := auth.VerifyJWT(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		userID, role, err := auth.ParseIdentity(token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:   userID,
			Role: role,
		})
		ctx.Next()
	}
}

// RequireRole gates a route to callers whose token carries the given role.
// Must be mounted after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok || user.Role != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
			return
		}

		ctx.Next()
	}
}
