package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"servicehub/db"
	"servicehub/lifecycle"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"
)

// CreateReview submits a review by booking ID. Same gates as the
// per-booking endpoint; kept as a flat resource for clients that work with
// review objects directly.
func CreateReview(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}

	type ReviewInput struct {
		BookingID uint   `json:"booking_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	input := new(ReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, input.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	reviewed, err := booking.HasReviewBy(db.DB, actor.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing reviews",
			Error:   err.Error(),
		})
	}

	lactor := lifecycle.Actor{ID: actor.ID, Role: actor.Role}
	if err := lifecycle.CanReview(booking, lactor, lifecycle.FlagFromBool(reviewed)); err != nil {
		return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	revieweeID, _ := lifecycle.RevieweeFor(booking, actor.ID)
	review := models.Review{
		BookingID:  booking.ID,
		ReviewerID: actor.ID,
		RevieweeID: revieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		if err := tx.Model(&booking).Update("has_review", true).Error; err != nil {
			return err
		}
		var profile models.Profile
		if err := tx.Where("user_id = ?", revieweeID).First(&profile).Error; err == nil {
			return profile.RecalculateRating(tx)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this booking.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetMyReviews returns reviews received by the current user
func GetMyReviews(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var reviews []models.Review
	if err := db.DB.Preload("Reviewer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, email, role")
	}).Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// GetUserReviews returns reviews received by any user (public profile view)
func GetUserReviews(c *fiber.Ctx) error {
	userID := c.Params("userID")

	var reviews []models.Review
	if err := db.DB.Where("reviewee_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// GetReview returns one review by ID
func GetReview(c *fiber.Ctx) error {
	id := c.Params("id")
	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(review)
}

// UpdateReview edits an existing review in place (reviewer only). Creation
// is at-most-once, but the single slot can be rewritten.
func UpdateReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
			Error:   err.Error(),
		})
	}
	if review.ReviewerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to edit this review",
		})
	}

	type ReviewUpdate struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	input := new(ReviewUpdate)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Rating < 1 || input.Rating > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(map[string]interface{}{
			"rating":  input.Rating,
			"comment": input.Comment,
		}).Error; err != nil {
			return err
		}
		var profile models.Profile
		if err := tx.Where("user_id = ?", review.RevieweeID).First(&profile).Error; err == nil {
			return profile.RecalculateRating(tx)
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update review",
			Error:   err.Error(),
		})
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	return c.JSON(review)
}
