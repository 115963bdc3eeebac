package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// The mobile client expects plain JSON bodies and a bare {"error": "..."}
// envelope on failure; details carries field-level validation problems.

func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

func SendOK(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, http.StatusOK, data)
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return SendJSON(c, http.StatusCreated, data)
}

func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

func SendError(c *fiber.Ctx, statusCode int, message string) error {
	return SendJSON(c, statusCode, fiber.Map{"error": message})
}

func SendValidationError(c *fiber.Ctx, details map[string]string) error {
	return SendJSON(c, http.StatusBadRequest, fiber.Map{
		"error":   "Validation failed",
		"details": details,
	})
}

func SendBadRequest(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusBadRequest, message)
}

func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, message)
}

func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, message)
}

// GetIPAddress extracts the client IP address.
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}

// UserID returns the authenticated user ID stored by the auth middleware.
func UserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}
