package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"chat-dashboard/logging"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the page and API routes of the chat handler
func NewRouter(log *slog.Logger, h *ChatHandler, tmpl *template.Template) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(log))
	router.SetHTMLTemplate(tmpl)

	// Enable CORS for local development
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", h.Health)

	page := router.Group("/", h.SessionMiddleware())
	{
		page.GET("/", h.Index)
		page.POST("/send", h.Send)
		page.POST("/clear", h.Clear)
		page.POST("/role", h.SelectRole)
	}

	api := router.Group("/api", h.SessionMiddleware())
	{
		api.GET("/messages", h.GetMessages)
		api.POST("/messages", h.PostMessage)
		api.DELETE("/messages", h.DeleteMessages)
		api.PUT("/draft", h.PutDraft)
		api.PUT("/role", h.PutRole)
	}

	return router
}
