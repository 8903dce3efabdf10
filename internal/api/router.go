package api

import (
	"net/http"
	"time"

	"github.com/article-share-api/internal/auth"
	"github.com/article-share-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, tokens auth.TokenCodec, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	articleHandler := NewArticleHandler(services, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/stats", statsHandler(services))

	// Public endpoints
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	// Authenticated endpoints
	articles := router.Group("/articles")
	articles.Use(authMiddleware(tokens))
	{
		articles.GET("", articleHandler.List)
		articles.POST("", articleHandler.Create)
		articles.DELETE("/:id", articleHandler.Delete)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "article-share-api",
	})
}

// statsHandler returns row counts per resource
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		usersCount, _ := services.Stats.GetCount(ctx, "users")
		articlesCount, _ := services.Stats.GetCount(ctx, "articles")

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"users":    usersCount,
				"articles": articlesCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
