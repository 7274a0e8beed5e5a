package router

import (
	"time"

	"github.com/foodlink-dev/foodlink/internal/handlers"
	"github.com/foodlink-dev/foodlink/internal/middleware"
	"github.com/foodlink-dev/foodlink/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/listings", middleware.AuthMiddleware(), handlers.ListingsFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		donations := api.Group("/donations", middleware.AuthMiddleware())
		{
			donations.POST("", middleware.RequireRole(types.RoleDonor), handlers.CreateDonation)
			donations.GET("", handlers.ListAvailableDonations)
			donations.GET("/donor", handlers.ListDonorDonations)
			donations.PUT("/:donation_id/claim", handlers.ClaimDonation)
			donations.DELETE("/:donation_id/delete", handlers.DeleteDonation)
		}

		matches := api.Group("/matches", middleware.AuthMiddleware())
		{
			matches.POST("/:donation_id/accept", middleware.RequireRole(types.RoleRecipient), handlers.AcceptDonation)
			matches.GET("", handlers.ListRecipientMatches)
			matches.PATCH("/:match_id", handlers.UpdateMatchStatus)
		}

		routes := api.Group("/routes", middleware.AuthMiddleware())
		{
			routes.GET("/:match_id", handlers.GetRouteForMatch)
		}
	}

	return r
}
