package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealth handles GET /api/v1/health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":  "ok",
		"service": "resume-analyzer",
	}

	if h.db == nil {
		return c.JSON(status)
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}

	if err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}

	status["database"] = "ok"
	return c.JSON(status)
}
