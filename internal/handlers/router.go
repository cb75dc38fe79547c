package handlers

import (
	"log/slog"

	"tgclasses/internal/metrics"
	"tgclasses/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterDeps содержит всё, что нужно для сборки HTTP-маршрутов
type RouterDeps struct {
	Classes        *ClassHandler
	Health         *HealthHandler
	Logger         *slog.Logger
	AllowedOrigins []string
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	// без списка источников cors.New паникует, поэтому пустой список значит "все"
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// NewRouter собирает gin.Engine со всеми маршрутами и middleware
func NewRouter(deps RouterDeps) *gin.Engine {
	RegisterValidators()
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.StructuredLogger(deps.Logger),
		metrics.GinMiddleware(),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if deps.Health != nil {
		r.GET("/healthz", deps.Health.Health)
	}

	h := deps.Classes
	classes := r.Group("/api/classes")
	{
		classes.POST("", h.CreateClass)
		classes.POST("/", h.CreateClass)
		classes.GET("", h.ListClasses)
		classes.GET("/", h.ListClasses)
		classes.GET("/:class_id", h.GetClass)
		classes.PUT("/:class_id", h.UpdateClass)
		classes.DELETE("/:class_id", h.DeleteClass)
		classes.POST("/:class_id/rsvp", h.RSVP)
		classes.POST("/:class_id/questions", h.AskQuestion)
		if h.feed != nil {
			classes.GET("/:class_id/ws", h.ClassFeed)
		}
	}

	return r
}
