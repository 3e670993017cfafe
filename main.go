package main

import (
	"log"
	"net/http"

	"foodcart-api/config"
	"foodcart-api/geocoder"
	"foodcart-api/handlers"
	"foodcart-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize database
	config.InitDB(cfg.DBPath)

	// Wire the geocode cache the order and restaurant writes resolve through
	client := geocoder.NewClient(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey, cfg.GeocoderTimeout)
	handlers.Geo = geocoder.NewCache(config.DB, client, cfg.GeocodeCacheTTL)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Foodcart Order Management API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
