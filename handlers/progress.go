package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tom73737/non-zero-days-app-jkqfrv/utils"
)

// GetProgress handles GET /api/progress.
func GetProgress(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		view, err := webApp.Progress.GetProgress(c.Context(), userID, time.Now())
		if err != nil {
			slog.Error("Failed to load progress",
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to load progress")
		}

		return utils.SendOK(c, view)
	}
}

// GetHistory handles GET /api/progress/history.
func GetHistory(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		history, err := webApp.Progress.GetHistory(c.Context(), userID, time.Now())
		if err != nil {
			slog.Error("Failed to load check-in history",
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to load check-in history")
		}

		return utils.SendOK(c, history)
	}
}
