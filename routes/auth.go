package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

// SetupAuthRoutes configures registration, login and session routes
func SetupAuthRoutes(app *fiber.App) {
	// Public routes
	app.Post("/register", controllers.Register)
	app.Post("/login", controllers.Login)

	auth := app.Group("/auth")
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)

	users := app.Group("/users")
	users.Get("/me", middleware.Protected(), controllers.GetMe)
}
