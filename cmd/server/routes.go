package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"anonimax.backend/internal/interfaces/http/handlers"
	"anonimax.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	listingHandler *handlers.ListingHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, frontendURL string) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", frontendURL)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/forgot-password", d.authHandler.ForgotPassword)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Profile directory (public read)
		profiles := v1.Group("/profiles")
		{
			profiles.GET("", d.profileHandler.List)
			profiles.GET("/me", d.authMiddleware, d.profileHandler.GetMine)
			profiles.PUT("/me", d.authMiddleware, d.profileHandler.UpdateMine)
		}

		// Favorites (protected)
		favorites := v1.Group("/favorites")
		favorites.Use(d.authMiddleware)
		{
			favorites.POST("", d.profileHandler.AddFavorite)
			favorites.GET("", d.profileHandler.ListFavorites)
			favorites.DELETE("/:id", d.profileHandler.RemoveFavorite)
		}

		// Listings (public read, protected write)
		listings := v1.Group("/listings")
		{
			listings.GET("", d.listingHandler.List)
			listings.GET("/mine", d.authMiddleware, d.listingHandler.Mine)
			listings.GET("/:id", d.listingHandler.Get)
			listings.POST("", d.authMiddleware, middleware.IdempotencyMiddleware(), d.listingHandler.Create)
			listings.POST("/payment", d.authMiddleware, d.listingHandler.SubmitPayment)
		}

		// Admin routes
		v1.POST("/admin/login", d.adminHandler.Login)

		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/stats", d.adminHandler.Stats)
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)
			admin.GET("/listings", d.adminHandler.ListListings)
			admin.POST("/listings/:id/action", d.adminHandler.ListingAction)
			admin.GET("/payments", d.adminHandler.ListPayments)
			admin.POST("/payments/:id/verify", d.adminHandler.VerifyPayment)
		}
	}
}
