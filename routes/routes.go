package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/RanjeetKaur14/UniSphere/handlers"
	"github.com/RanjeetKaur14/UniSphere/middleware"
)

func SetupRouter(h *handlers.Handler) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "UniSphere Pulse Feed API running",
			"service": "healthy",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	api := router.Group("/api")
	api.Use(middleware.RateLimit(60, time.Minute))

	api.GET("/posts", h.ListPosts)
	api.GET("/posts/:id", h.GetPost)
	api.POST("/posts", h.CreatePost)

	api.POST("/posts/:id/like", h.ToggleLike)

	api.POST("/posts/:id/comments", h.AddComment)
	api.GET("/posts/:id/comments", h.ListComments)

	api.POST("/posts/:id/save", h.ToggleSave)
	api.POST("/posts/:id/convert-to-cart", h.ConvertToCart)

	api.GET("/stats", h.GetStats)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{"success": false, "message": "Endpoint not found"})
			return
		}
		c.Next()
	})

	return router
}
