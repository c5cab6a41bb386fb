package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

// SetupReviewRoutes configures all review related routes
func SetupReviewRoutes(app *fiber.App) {
	review := app.Group("/reviews")

	review.Get("/me", middleware.Protected(), controllers.GetMyReviews)
	review.Get("/user/:userID", controllers.GetUserReviews)
	review.Get("/:id", controllers.GetReview)

	review.Post("/", middleware.Protected(), controllers.CreateReview)
	review.Patch("/:id", middleware.Protected(), controllers.UpdateReview)
}
