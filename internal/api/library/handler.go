package library

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	msdomain "github.com/marketsense/marketsense/internal/domain"
	"github.com/marketsense/marketsense/internal/service"
)

// Handler handles notes, saved research and history API requests
type Handler struct {
	library *service.LibraryService
}

// NewHandler creates a new library handler
func NewHandler(library *service.LibraryService) *Handler {
	return &Handler{library: library}
}

// RegisterRoutes registers library routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notes", h.ListNotes)
	r.POST("/notes", h.CreateNote)
	r.GET("/notes/:id", h.GetNote)
	r.DELETE("/notes/:id", h.DeleteNote)

	r.GET("/saved-research", h.ListResearch)
	r.POST("/saved-research", h.SaveResearch)
	r.GET("/saved-research/:id", h.GetResearch)
	r.DELETE("/saved-research/:id", h.DeleteResearch)

	r.GET("/history", h.ListHistory)
	r.DELETE("/history", h.ClearHistory)
}

// ListNotes returns all notes, newest first
func (h *Handler) ListNotes(c *gin.Context) {
	notes, err := h.library.Notes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

// CreateNote synthesizes and stores a note from research content
func (h *Handler) CreateNote(c *gin.Context) {
	var req msdomain.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.library.SaveNote(c.Request.Context(), req.Title, req.Content, req.Domain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GetNote returns a single note
func (h *Handler) GetNote(c *gin.Context) {
	note, err := h.library.Note(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, msdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note
func (h *Handler) DeleteNote(c *gin.Context) {
	if err := h.library.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListResearch returns all saved research, newest first
func (h *Handler) ListResearch(c *gin.Context) {
	items, err := h.library.ResearchList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// SaveResearch stores a raw research result
func (h *Handler) SaveResearch(c *gin.Context) {
	var req msdomain.SaveResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.library.SaveResearch(c.Request.Context(), req.Title, req.Content, req.Domain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetResearch returns a single saved research item
func (h *Handler) GetResearch(c *gin.Context) {
	item, err := h.library.ResearchItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, msdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "research not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteResearch removes a saved research item
func (h *Handler) DeleteResearch(c *gin.Context) {
	if err := h.library.DeleteResearch(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ListHistory returns the recent search queries
func (h *Handler) ListHistory(c *gin.Context) {
	items, err := h.library.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// ClearHistory empties the search history
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.library.ClearHistory(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
