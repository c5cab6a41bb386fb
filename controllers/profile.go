package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/models"
	"servicehub/utils"
)

// GetMyProfile returns the authenticated user's profile
func GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}
	return c.JSON(profile)
}

// UpdateMyProfile creates or updates the authenticated user's profile
func UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var input models.Profile
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		profile = models.Profile{UserID: userID}
		if err := db.DB.Create(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to create profile",
				Error:   err.Error(),
			})
		}
	}

	updates := map[string]interface{}{
		"full_name": input.FullName,
		"location":  input.Location,
		"bio":       input.Bio,
		"phone":     input.Phone,
	}
	if err := db.DB.Model(&profile).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update profile",
			Error:   err.Error(),
		})
	}
	return c.JSON(profile)
}

// UploadProfilePicture uploads a profile picture and stores its URL
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing picture file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to read picture",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadPicture(file, fmt.Sprintf("profile-%d", userID), "profiles")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload picture",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&profile).Update("picture_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save picture URL",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"picture_url": url})
}

// GetPublicProfile returns a user's public profile with their role and
// received review count
func GetPublicProfile(c *fiber.Ctx) error {
	userID := c.Params("userID")

	var user models.User
	if err := db.DB.Preload("Profile").First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	var reviewCount int64
	db.DB.Model(&models.Review{}).Where("reviewee_id = ?", user.ID).Count(&reviewCount)

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"role":         user.Role,
		"profile":      user.Profile,
		"review_count": reviewCount,
	})
}
