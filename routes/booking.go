package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/bookings", middleware.Protected())

	booking.Get("/", controllers.GetMyBookings)
	booking.Get("/:id", controllers.GetBooking)

	booking.Post("/", middleware.RequireRole(models.RoleCustomer), controllers.CreateBooking)
	booking.Patch("/:id/status", controllers.UpdateBookingStatus)

	// Post-completion feedback lives under the booking it belongs to
	booking.Post("/:id/review", controllers.CreateBookingReview)
	booking.Get("/:id/review", controllers.GetBookingReview)
}
