package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"servicehub/db"
	"servicehub/models"
	"servicehub/utils"
)

// GetAllUsers lists users for the admin console, filterable by role and status
func GetAllUsers(c *fiber.Ctx) error {
	query := db.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var users []models.User
	if err := query.Preload("Profile").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}
	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

// SetUserStatus enables or disables a user account
func SetUserStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Status models.UserStatus `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if input.Status != models.UserEnabled && input.Status != models.UserDisabled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be enabled or disabled",
		})
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
			Error:   err.Error(),
		})
	}
	if user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin accounts cannot be disabled",
		})
	}

	if err := db.DB.Model(&user).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user status",
			Error:   err.Error(),
		})
	}

	if input.Status == models.UserDisabled {
		CreateNotification(user.ID, models.NotificationSystem, "Your account has been disabled by an administrator.", "")
	} else {
		CreateNotification(user.ID, models.NotificationSystem, "Your account has been re-enabled.", "")
	}

	user.Password = ""
	return c.JSON(user)
}

// RemoveListing takes down a listing that violates marketplace rules
func RemoveListing(c *fiber.Ctx) error {
	id := c.Params("id")
	var listing models.Listing
	if err := db.DB.First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Listing not found",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to remove listing",
			Error:   err.Error(),
		})
	}

	CreateNotification(listing.UserID, models.NotificationSystem,
		"Your listing '"+listing.Title+"' was removed by an administrator.", "")
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveReview deletes a review and refreshes the reviewee's rating
func RemoveReview(c *fiber.Ctx) error {
	id := c.Params("id")
	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Review not found",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
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
			Message: "Failed to remove review",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPlatformStats returns marketplace-wide totals for the admin console
func GetPlatformStats(c *fiber.Ctx) error {
	var statistics struct {
		TotalUsers     int64     `json:"total_users"`
		TotalCustomers int64     `json:"total_customers"`
		TotalProviders int64     `json:"total_providers"`
		DisabledUsers  int64     `json:"disabled_users"`
		TotalListings  int64     `json:"total_listings"`
		TotalRequests  int64     `json:"total_requests"`
		TotalQuotes    int64     `json:"total_quotes"`
		TotalBookings  int64     `json:"total_bookings"`
		CompletedCount int64     `json:"completed_count"`
		TotalReviews   int64     `json:"total_reviews"`
		GrossVolume    float64   `json:"gross_volume"`
		LastUpdated    time.Time `json:"last_updated"`
	}

	db.DB.Model(&models.User{}).Count(&statistics.TotalUsers)
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&statistics.TotalCustomers)
	db.DB.Model(&models.User{}).Where("role = ?", models.RoleProvider).Count(&statistics.TotalProviders)
	db.DB.Model(&models.User{}).Where("status = ?", models.UserDisabled).Count(&statistics.DisabledUsers)
	db.DB.Model(&models.Listing{}).Count(&statistics.TotalListings)
	db.DB.Model(&models.Request{}).Count(&statistics.TotalRequests)
	db.DB.Model(&models.Quote{}).Count(&statistics.TotalQuotes)
	db.DB.Model(&models.Booking{}).Count(&statistics.TotalBookings)
	db.DB.Model(&models.Booking{}).Where("status = ?", models.BookingCompleted).Count(&statistics.CompletedCount)
	db.DB.Model(&models.Review{}).Count(&statistics.TotalReviews)

	var volumeResult struct {
		GrossVolume float64
	}
	db.DB.Table("bookings").
		Joins("JOIN quotes ON bookings.quote_id = quotes.id").
		Where("bookings.status = ?", models.BookingCompleted).
		Select("COALESCE(SUM(quotes.price), 0) as gross_volume").
		Scan(&volumeResult)
	statistics.GrossVolume = volumeResult.GrossVolume

	statistics.LastUpdated = time.Now()
	return c.JSON(statistics)
}
