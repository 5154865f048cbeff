package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type (
	HealthHandler interface {
		Health(c *fiber.Ctx) error
	}

	// Pinger is a dependency the health check probes.
	Pinger interface {
		Ping(ctx context.Context) error
	}

	healthHandler struct {
		checks map[string]Pinger
	}

	PingerFunc func(ctx context.Context) error
)

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// DatabasePinger probes the sql pool behind db.
func DatabasePinger(db *gorm.DB) Pinger {
	return PingerFunc(func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

func NewHealthHandler(checks map[string]Pinger) HealthHandler {
	return &healthHandler{checks: checks}
}

func (h *healthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := fiber.StatusOK
	components := make(fiber.Map, len(h.checks))
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			components[name] = err.Error()
			status = "unavailable"
			code = fiber.StatusServiceUnavailable
			continue
		}
		components[name] = "ok"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"components": components,
	})
}
