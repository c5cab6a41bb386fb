package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

// SetupRequestRoutes configures all service request related routes
func SetupRequestRoutes(app *fiber.App) {
	request := app.Group("/requests", middleware.Protected())

	request.Get("/", middleware.RequireRole(models.RoleProvider), controllers.GetAllRequests)
	request.Get("/me", middleware.RequireRole(models.RoleCustomer), controllers.GetMyRequests)
	request.Get("/:id", controllers.GetRequest)

	request.Post("/", middleware.RequireRole(models.RoleCustomer), controllers.CreateRequest)
	request.Patch("/:id", middleware.RequireRole(models.RoleCustomer), controllers.UpdateRequest)
	request.Post("/:id/close", middleware.RequireRole(models.RoleCustomer), controllers.CloseRequest)
	request.Delete("/:id", middleware.RequireRole(models.RoleCustomer), controllers.DeleteRequest)

	// Quotes hang off the request they answer
	request.Get("/:requestID/quotes", controllers.GetQuotesForRequest)
}
