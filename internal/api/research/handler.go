package research

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	msdomain "github.com/marketsense/marketsense/internal/domain"
	"github.com/marketsense/marketsense/internal/service"
)

// Handler handles research conversation API requests
type Handler struct {
	research *service.ResearchService
}

// NewHandler creates a new research handler
func NewHandler(research *service.ResearchService) *Handler {
	return &Handler{research: research}
}

// RegisterRoutes registers research routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/conversations", h.CreateConversation)
	r.GET("/conversations/:id/messages", h.ListMessages)
	r.POST("/conversations/:id/messages", h.SendMessage)
	r.DELETE("/conversations/:id", h.CloseConversation)
	r.POST("/reset", h.ResetDomain)
}

// CreateConversation opens a new research conversation
func (h *Handler) CreateConversation(c *gin.Context) {
	var req msdomain.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv := h.research.StartConversation(req.Domain)
	c.JSON(http.StatusCreated, gin.H{"id": conv.ID, "domain": conv.Domain})
}

// ListMessages returns the conversation transcript
func (h *Handler) ListMessages(c *gin.Context) {
	conv, err := h.research.Conversation(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":  conv.Messages(),
		"streaming": conv.StreamingText(),
	})
}

// SendMessage submits a research query and streams the response (SSE)
func (h *Handler) SendMessage(c *gin.Context) {
	var req msdomain.ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stream, err := h.research.Submit(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, msdomain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		case errors.Is(err, msdomain.ErrConversationBusy):
			c.JSON(http.StatusConflict, gin.H{"error": "a response is already in progress"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-stream
		if !ok {
			return false
		}
		data, _ := json.Marshal(chunk)
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", chunk.Type, string(data))
		return true
	})
}

// CloseConversation disposes of a conversation
func (h *Handler) CloseConversation(c *gin.Context) {
	h.research.CloseConversation(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// ResetDomain clears the chat session for a domain
func (h *Handler) ResetDomain(c *gin.Context) {
	var req msdomain.ResetChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.research.ResetDomain(req.Domain)
	c.Status(http.StatusNoContent)
}
