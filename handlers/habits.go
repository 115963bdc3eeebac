package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tom73737/non-zero-days-app-jkqfrv/database/repositories"
	"github.com/tom73737/non-zero-days-app-jkqfrv/models"
	"github.com/tom73737/non-zero-days-app-jkqfrv/services"
	"github.com/tom73737/non-zero-days-app-jkqfrv/utils"
)

// HabitsCreate handles POST /api/habits.
func HabitsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req models.HabitCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}
		if details := req.Validate(); len(details) > 0 {
			return utils.SendValidationError(c, details)
		}

		habit, err := webApp.Habits.Create(c.Context(), userID, req)
		if err != nil {
			if errors.Is(err, services.ErrHabitLimitExceeded) {
				return utils.SendBadRequest(c, "Maximum of 3 active habits allowed")
			}
			slog.Error("Failed to create habit",
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to create habit")
		}

		return utils.SendCreated(c, models.NewHabitDTO(habit))
	}
}

// HabitsList handles GET /api/habits.
func HabitsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		habits, err := webApp.Habits.ListActive(c.Context(), userID)
		if err != nil {
			slog.Error("Failed to list habits",
				slog.String("user_id", userID),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to list habits")
		}

		dtos := make([]models.HabitDTO, 0, len(habits))
		for _, habit := range habits {
			dtos = append(dtos, models.NewHabitDTO(habit))
		}

		return utils.SendOK(c, dtos)
	}
}

// HabitsUpdate handles PATCH /api/habits/:id.
func HabitsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		var req models.HabitUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}
		if details := req.Validate(); len(details) > 0 {
			return utils.SendValidationError(c, details)
		}

		habit, err := webApp.Habits.Update(c.Context(), userID, c.Params("id"), req)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "Habit not found")
			}
			slog.Error("Failed to update habit",
				slog.String("user_id", userID),
				slog.String("habit_id", c.Params("id")),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to update habit")
		}

		return utils.SendOK(c, models.NewHabitDTO(habit))
	}
}

// HabitsDelete handles DELETE /api/habits/:id (soft delete).
func HabitsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := utils.UserID(c)
		if !ok {
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if err := webApp.Habits.Delete(c.Context(), userID, c.Params("id")); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "Habit not found")
			}
			slog.Error("Failed to delete habit",
				slog.String("user_id", userID),
				slog.String("habit_id", c.Params("id")),
				slog.Any("error", err))
			return utils.SendInternalServerError(c, "Failed to delete habit")
		}

		return utils.SendNoContent(c)
	}
}
