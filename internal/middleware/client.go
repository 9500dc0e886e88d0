package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// LocalClientID is the fiber.Ctx local holding the caller's client id.
const LocalClientID = "clientID"

// EnsureClientID identifies the caller by the X-Client-ID header or the
// clientId query parameter. The id only names websocket connections; it
// carries no seat or color.
func EnsureClientID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if clientID is already set
		if c.Locals(LocalClientID) != nil {
			return c.Next()
		}

		// Check header first
		clientID := c.Get("X-Client-ID")
		if clientID == "" {
			clientID = c.Query("clientId")
		}

		if clientID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Client ID is required. Please ensure client is properly initialized.",
			})
		}

		// Store in context for this request
		c.Locals(LocalClientID, clientID)
		return c.Next()
	}
}
