package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger       *zap.Logger
	AllowOrigins []string

	HealthHandler   *HealthHandler
	TemplateHandler *TemplateHandler
	SessionHandler  *SessionHandler
	StoryHandler    *StoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.AllowOrigins))
	r.MaxMultipartMemory = maxUploadBytes

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.TemplateHandler != nil {
			api.GET("/templates", cfg.TemplateHandler.List)
		}

		// Scenario sessions
		if cfg.SessionHandler != nil {
			api.POST("/sessions", cfg.SessionHandler.Create)
			api.GET("/sessions/:id", cfg.SessionHandler.Get)
			api.DELETE("/sessions/:id", cfg.SessionHandler.Delete)
			api.PUT("/sessions/:id/template", cfg.SessionHandler.SetTemplate)
			api.PUT("/sessions/:id/meta", cfg.SessionHandler.SetMeta)
			api.POST("/sessions/:id/items", cfg.SessionHandler.AppendItem)
			api.PATCH("/sessions/:id/items/:index", cfg.SessionHandler.UpdateItem)
			api.DELETE("/sessions/:id/items/:index", cfg.SessionHandler.RemoveItem)
			api.POST("/sessions/:id/generate", cfg.SessionHandler.Generate)
		}

		// Story problems
		if cfg.StoryHandler != nil {
			api.GET("/story/template", cfg.StoryHandler.Template)
			api.POST("/story", cfg.StoryHandler.Generate)
		}
	}

	return r
}
