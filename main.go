package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/KESA-RIKIN/zero-hunger-platform/config"
	"github.com/KESA-RIKIN/zero-hunger-platform/handlers"
	"github.com/KESA-RIKIN/zero-hunger-platform/routes"
	"github.com/KESA-RIKIN/zero-hunger-platform/store"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load .env and initialize database
	config.Load()
	config.InitDB()
	handlers.SetStore(store.NewGormStore(config.DB))

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS for the browser frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Zero Hunger Platform API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Zero Hunger Platform Backend is running",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"donor", "receiver", "coordinator", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
