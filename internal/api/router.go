package api

import (
	"github.com/gin-gonic/gin"

	"github.com/marketsense/marketsense/internal/api/feed"
	"github.com/marketsense/marketsense/internal/api/library"
	"github.com/marketsense/marketsense/internal/api/middleware"
	"github.com/marketsense/marketsense/internal/api/research"
	"github.com/marketsense/marketsense/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	researchService *service.ResearchService,
	feedService *service.FeedService,
	libraryService *service.LibraryService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(middleware.CORSConfig{AllowOrigins: cfg.AllowOrigins}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Research conversations (chat + SSE streaming)
	researchHandler := research.NewHandler(researchService)
	researchGroup := r.Group("/api/research")
	researchHandler.RegisterRoutes(researchGroup)

	// Notes, saved research, search history
	libraryHandler := library.NewHandler(libraryService)
	libraryGroup := r.Group("/api")
	libraryHandler.RegisterRoutes(libraryGroup)

	// News and trends feeds
	feedHandler := feed.NewHandler(feedService)
	feedGroup := r.Group("/api")
	feedHandler.RegisterRoutes(feedGroup)

	return r
}
