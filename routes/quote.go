package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

// SetupQuoteRoutes configures all quote related routes
func SetupQuoteRoutes(app *fiber.App) {
	quote := app.Group("/quotes", middleware.Protected())

	quote.Get("/", middleware.RequireRole(models.RoleProvider), controllers.GetAllQuotes)
	quote.Get("/:id", controllers.GetQuote)

	quote.Post("/", middleware.RequireRole(models.RoleProvider), controllers.CreateQuote)
	quote.Patch("/:id/status", controllers.UpdateQuoteStatus)
	quote.Delete("/:id", middleware.RequireRole(models.RoleProvider), controllers.DeleteQuote)
}
