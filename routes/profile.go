package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

// SetupProfileRoutes configures all profile related routes
func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/profiles")

	profile.Get("/me", middleware.Protected(), controllers.GetMyProfile)
	profile.Patch("/me", middleware.Protected(), controllers.UpdateMyProfile)
	profile.Post("/me/picture", middleware.Protected(), controllers.UploadProfilePicture)
	profile.Get("/:userID", controllers.GetPublicProfile)
}
