package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

// SetupDashboardRoutes configures the overview endpoints
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())

	dashboard.Get("/provider", middleware.RequireRole(models.RoleProvider), controllers.GetProviderDashboard)
	dashboard.Get("/customer", middleware.RequireRole(models.RoleCustomer), controllers.GetCustomerDashboard)
	dashboard.Get("/recent-bookings", controllers.GetRecentBookings)
}
