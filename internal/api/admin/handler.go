package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zinister/mentor/internal/domain"
	"github.com/zinister/mentor/internal/service"
	"github.com/zinister/mentor/internal/session"
)

// Handler handles admin API requests
type Handler struct {
	ingestService    *service.IngestService
	knowledgeService *service.KnowledgeService
	sessions         *session.Manager
}

// NewHandler creates a new admin handler
func NewHandler(
	ingestService *service.IngestService,
	knowledgeService *service.KnowledgeService,
	sessions *session.Manager,
) *Handler {
	return &Handler{
		ingestService:    ingestService,
		knowledgeService: knowledgeService,
		sessions:         sessions,
	}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/documents", h.UploadDocument)
	r.POST("/reindex", h.Reindex)
	r.DELETE("/uploads", h.ClearUploads)
	r.GET("/stats", h.Stats)
}

// UploadDocument accepts a file upload and rebuilds the knowledge store
func (h *Handler) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	doc, err := h.ingestService.SaveUpload(c.Request.Context(), file)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnsupportedFileType) || errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ingestService.Reindex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "document": doc})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc, "index": result})
}

// Reindex rebuilds the knowledge store from the source directories
func (h *Handler) Reindex(c *gin.Context) {
	result, err := h.ingestService.Reindex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClearUploads removes all uploaded files and rebuilds the store
func (h *Handler) ClearUploads(c *gin.Context) {
	if err := h.ingestService.ClearUploads(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := h.ingestService.Reindex(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Stats returns system statistics
func (h *Handler) Stats(c *gin.Context) {
	chunks, err := h.knowledgeService.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.Stats{
		TotalChunks:   chunks,
		TotalSessions: h.sessions.Count(),
		TotalUploads:  h.ingestService.CountUploads(),
	})
}
