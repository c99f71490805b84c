package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketsense/marketsense/internal/service"
)

const (
	defaultTopic  = "AI technology"
	defaultSector = "AI and Machine Learning"
)

// Handler handles news and trends feed API requests
type Handler struct {
	feed *service.FeedService
}

// NewHandler creates a new feed handler
func NewHandler(feed *service.FeedService) *Handler {
	return &Handler{feed: feed}
}

// RegisterRoutes registers feed routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/news", h.News)
	r.GET("/trends", h.Trends)
}

// News returns recent news items for a topic
func (h *Handler) News(c *gin.Context) {
	topic := c.DefaultQuery("topic", defaultTopic)
	c.JSON(http.StatusOK, h.feed.News(c.Request.Context(), topic))
}

// Trends returns current market trends for a sector
func (h *Handler) Trends(c *gin.Context) {
	sector := c.DefaultQuery("sector", defaultSector)
	c.JSON(http.StatusOK, h.feed.Trends(c.Request.Context(), sector))
}
