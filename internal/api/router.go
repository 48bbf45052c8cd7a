package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine, mirroring the route grouping and CORS
// policy the teacher's main.go configures directly.
func NewRouter() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{"X-Stego-LSB-Width", "X-Stego-Warnings", "Content-Disposition"}
	router.Use(cors.New(corsConfig))

	h := NewHandler()

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/health", h.HealthCheck)

		stego := apiGroup.Group("/stego")
		{
			stego.POST("/embed", h.Embed)
			stego.POST("/extract", h.Extract)
		}
	}

	return router
}
