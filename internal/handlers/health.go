package handlers

import (
	"context"
	"net/http"
	"time"

	"tgclasses/internal/response"
	"tgclasses/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler; redis может быть nil, если кэш отключён
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health проверяет базу данных и Redis
// @Summary		Состояние сервиса
// @Tags			health
// @Produce		json
// @Success		200	{object}	response.HealthResponse
// @Failure		503	{object}	response.HealthResponse
// @Router			/healthz [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if err := storage.Ping(ctx, h.db); err != nil {
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	// недоступный кэш не делает сервис неработоспособным
	if h.redis != nil {
		resp.Cache = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Cache = "unavailable"
		}
	}

	c.JSON(status, resp)
}
