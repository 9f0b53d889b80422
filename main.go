package main

import (
	"log"
	"net/http"
	"os"

	"workbridge-api/config"
	"workbridge-api/routes"
	"workbridge-api/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Open the store: seeded in-memory by default, sqlite when
	// WORKBRIDGE_DB is set
	s, err := store.Open(config.DBPath())
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	if config.DBPath() == "" {
		log.Println("Using seeded in-memory store (set WORKBRIDGE_DB for sqlite)")
	} else {
		log.Println("Using sqlite store at", config.DBPath())
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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
			"service": "WorkBridge Marketplace API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🛠 Welcome to the WorkBridge Marketplace API",
			"docs":    "/api/lifecycle",
			"health":  "/health",
			"roles":   []string{"client", "worker", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r, s)

	// Start server
	port := config.Port()
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
