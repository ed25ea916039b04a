package server

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uncertainty-gin/internal/config"
	"uncertainty-gin/internal/handlers"
	"uncertainty-gin/internal/middleware"
)

// NewRouter wires middleware, templates and routes into a gin engine.
func NewRouter(cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger), middleware.Recovery(logger))
	r.Use(cors.New(corsConfig(cfg)))

	tmpl, err := handlers.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	h := handlers.New(cfg, logger)
	r.GET("/", h.ShowForm)
	r.POST("/", h.CalculateForm)
	r.GET("/healthz", handlers.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/calculate", h.CalculateJSON)
		api.POST("/chart", h.Chart)
	}
	return r, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = cfg.AllowOrigins
	return c
}
