package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

// SetupAdminRoutes configures the moderation and platform oversight routes
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	admin.Get("/users", controllers.GetAllUsers)
	admin.Patch("/users/:id/status", controllers.SetUserStatus)
	admin.Delete("/listings/:id", controllers.RemoveListing)
	admin.Delete("/reviews/:id", controllers.RemoveReview)
	admin.Get("/stats", controllers.GetPlatformStats)
}
