package widget

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/service"
	"github.com/zinister/mentor/internal/session"
)

// Handler handles widget API requests
type Handler struct {
	chatService *service.ChatService
	sessions    *session.Manager
}

// NewHandler creates a new widget handler
func NewHandler(chatService *service.ChatService, sessions *session.Manager) *Handler {
	return &Handler{chatService: chatService, sessions: sessions}
}

// RegisterRoutes registers widget routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/session", h.CreateSession)
	r.POST("/chat", h.Chat)
	r.GET("/history/:session_id", h.History)
	r.PUT("/settings/:session_id", h.UpdateSettings)
	r.POST("/reset/:session_id", h.Reset)
}

// CreateSession starts a new conversation session
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"settings":   sess.Settings,
	})
}

// Chat handles a chat message
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrNoCredential) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History returns the ordered transcript of a session
func (h *Handler) History(c *gin.Context) {
	turns, err := h.sessions.History(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"turns": turns})
}

// UpdateSettings adjusts the session's generation controls
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req domain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.sessions.UpdateSettings(c.Param("session_id"), req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Reset clears the session transcript
func (h *Handler) Reset(c *gin.Context) {
	if err := h.sessions.Reset(c.Param("session_id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
