package middleware

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/models"
)

// RequireRole checks that the authenticated user still carries the required
// role and is not disabled. The token's role claim is advisory only; the
// database copy is what counts.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userID").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User ID not found in context",
			})
		}

		var user models.User
		if err := db.DB.First(&user, userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		if user.Status == models.UserDisabled {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is disabled",
			})
		}

		if user.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have the required role to perform this action",
			})
		}

		return c.Next()
	}
}

// CurrentActor loads the authenticated user and returns it, or nil with a
// response already written when the account no longer exists or is disabled.
func CurrentActor(c *fiber.Ctx) *models.User {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
		return nil
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found",
		})
		return nil
	}

	if user.Status == models.UserDisabled {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Account is disabled",
		})
		return nil
	}

	return &user
}
