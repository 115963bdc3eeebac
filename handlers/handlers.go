package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tom73737/non-zero-days-app-jkqfrv/config"
	"github.com/tom73737/non-zero-days-app-jkqfrv/database"
	"github.com/tom73737/non-zero-days-app-jkqfrv/services"
	"github.com/tom73737/non-zero-days-app-jkqfrv/utils"
)

// WebApp carries the dependencies every handler closes over.
type WebApp struct {
	Config   *config.Config
	DB       *database.DB // nil when running on the memory driver
	Habits   *services.HabitService
	Checkins *services.CheckinService
	Progress *services.ProgressService
	Sessions *services.SessionService
	Version  string
}

// HealthCheck reports process and storage health.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "healthy"
		dbStatus := "memory"

		if webApp.DB != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()

			dbStatus = "healthy"
			if err := webApp.DB.Ping(ctx); err != nil {
				status = "unhealthy"
				dbStatus = "unreachable"
			}
		}

		code := fiber.StatusOK
		if status != "healthy" {
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"version":   webApp.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"components": fiber.Map{
				"database": dbStatus,
			},
		})
	}
}

// DevToken mints a session token for local clients. Only routed in debug
// mode; production tokens come from the auth provider.
func DevToken(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"userId"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return utils.SendBadRequest(c, "userId is required")
		}

		token, err := webApp.Sessions.IssueToken(body.UserID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to issue token")
		}

		return utils.SendOK(c, fiber.Map{"token": token})
	}
}
