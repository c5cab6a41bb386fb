package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

// SetupListingRoutes configures all listing related routes
func SetupListingRoutes(app *fiber.App) {
	listing := app.Group("/listings")

	listing.Get("/", controllers.GetAllListings)
	listing.Get("/me", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.GetMyListings)
	listing.Get("/:id", controllers.GetListing)

	listing.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.CreateListing)
	listing.Patch("/:id", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.UpdateListing)
	listing.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.DeleteListing)
	listing.Post("/:id/picture", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.UploadListingPicture)
}
