package api

import (
	"github.com/gin-gonic/gin"
	"github.com/zinister/mentor/internal/api/admin"
	"github.com/zinister/mentor/internal/api/middleware"
	"github.com/zinister/mentor/internal/api/widget"
	"github.com/zinister/mentor/internal/service"
	"github.com/zinister/mentor/internal/session"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	ingestService *service.IngestService,
	knowledgeService *service.KnowledgeService,
	sessions *session.Manager,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Chat page
	SetupStaticRoutes(r)

	// Widget API (public)
	widgetHandler := widget.NewHandler(chatService, sessions)
	widgetGroup := r.Group("/api/widget")
	widgetHandler.RegisterRoutes(widgetGroup)

	// Admin API (requires API key when configured)
	adminHandler := admin.NewHandler(ingestService, knowledgeService, sessions)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
