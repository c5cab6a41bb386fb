package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

// SetupNotificationRoutes configures notification feed routes
func SetupNotificationRoutes(app *fiber.App) {
	notification := app.Group("/notifications", middleware.Protected())

	notification.Get("/", controllers.GetNotifications)
	notification.Get("/count", controllers.GetUnreadCount)
	notification.Post("/:id/read", controllers.MarkNotificationRead)
	notification.Post("/read-all", controllers.MarkAllNotificationsRead)
}
