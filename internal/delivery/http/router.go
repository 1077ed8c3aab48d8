package http

import (
	"github.com/flatmatch/flatmatch-backend/internal/delivery/http/handler"
	"github.com/flatmatch/flatmatch-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var roomTypes = map[string]bool{
	"private":  true,
	"shared":   true,
	"studio":   true,
	"entire":   true,
	"basement": true,
}

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	matchHandler   *handler.MatchHandler
	listingHandler *handler.ListingHandler
	chatHandler    *handler.ChatHandler
	authMiddleware *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	listingHandler *handler.ListingHandler,
	chatHandler *handler.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		matchHandler:   matchHandler,
		listingHandler: listingHandler,
		chatHandler:    chatHandler,
		authMiddleware: authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("roomtype", func(fl validator.FieldLevel) bool {
			return roomTypes[fl.Field().String()]
		})
	}

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Listing browsing is open; owners get their private listings
		// back when they present a token.
		listings := v1.Group("/listings")
		listings.Use(r.authMiddleware.OptionalAuth())
		{
			listings.GET("", r.listingHandler.List)
			listings.GET("/featured", r.listingHandler.Featured)
			listings.GET("/:id", r.listingHandler.GetByID)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.PUT("/me/roommate", r.profileHandler.UpsertRoommateProfile)
				profile.POST("/me/recompute", r.profileHandler.RecomputeCompletion)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			protected.GET("/roommates", r.matchHandler.ListRoommates)

			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.TopMatches)
				matches.GET("/:user_id/insight", r.matchHandler.Insight)
			}

			protected.POST("/listings", r.listingHandler.Create)

			protected.GET("/conversations", r.chatHandler.Conversations)
			protected.GET("/messages/:user_id", r.chatHandler.Thread)
			protected.POST("/messages", r.chatHandler.Send)
		}
	}

	return router
}
