package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tom73737/non-zero-days-app-jkqfrv/services"
	"github.com/tom73737/non-zero-days-app-jkqfrv/utils"
)

// Checkin handles POST /api/checkin, the one state-mutating operation of
// the system.
func Checkin(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		result, err := webApp.Checkins.CheckIn(c.Context(), userID, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrAlreadyCheckedIn) {
				return utils.SendBadRequest(c, "Already checked in today")
			}
			slog.Error("Failed to record check-in",
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to record check-in")
		}

		return utils.SendOK(c, result)
	}
}
