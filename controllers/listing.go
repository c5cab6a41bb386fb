package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"
)

// GetAllListings godoc
// @Summary Get all listings
// @Description Get all listings, optionally filtered by service, location or availability
// @Tags listings
// @Produce json
// @Success 200 {array} models.Listing
// @Router /listings [get]
func GetAllListings(c *fiber.Ctx) error {
	query := db.DB.Preload("Service").Preload("User")

	if serviceID := c.Query("service_id"); serviceID != "" {
		query = query.Where("service_id = ?", serviceID)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if c.Query("available") != "" {
		query = query.Where("available = ?", c.QueryBool("available"))
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch listings",
			Error:   err.Error(),
		})
	}
	return c.JSON(listings)
}

// GetListing godoc
// @Summary Get a listing by ID
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 404 {object} utils.ErrorResponse
// @Router /listings/{id} [get]
func GetListing(c *fiber.Ctx) error {
	id := c.Params("id")
	var listing models.Listing
	if err := db.DB.Preload("Service").Preload("User").First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Listing not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(listing)
}

// GetMyListings returns the authenticated provider's own listings
func GetMyListings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var listings []models.Listing
	if err := db.DB.Preload("Service").Where("user_id = ?", userID).Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch listings",
			Error:   err.Error(),
		})
	}
	return c.JSON(listings)
}

// CreateListing creates a listing owned by the authenticated provider
func CreateListing(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}

	var listing models.Listing
	if err := c.BodyParser(&listing); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if listing.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}
	if listing.MinPrice > listing.MaxPrice {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "min_price cannot exceed max_price",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, listing.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	listing.UserID = actor.ID
	if err := db.DB.Create(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create listing",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// UpdateListing updates a listing owned by the authenticated provider
func UpdateListing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var listing models.Listing
	if err := db.DB.First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Listing not found",
			Error:   err.Error(),
		})
	}
	if listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to edit this listing",
		})
	}

	var input models.Listing
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"min_price":   input.MinPrice,
		"max_price":   input.MaxPrice,
		"location":    input.Location,
		"available":   input.Available,
	}
	if err := db.DB.Model(&listing).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update listing",
			Error:   err.Error(),
		})
	}
	return c.JSON(listing)
}

// DeleteListing deletes a listing owned by the authenticated provider
func DeleteListing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var listing models.Listing
	if err := db.DB.First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Listing not found",
			Error:   err.Error(),
		})
	}
	if listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this listing",
		})
	}

	if err := db.DB.Delete(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete listing",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadListingPicture uploads a listing picture and stores its URL
func UploadListingPicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var listing models.Listing
	if err := db.DB.First(&listing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Listing not found",
			Error:   err.Error(),
		})
	}
	if listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to edit this listing",
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

	url, err := utils.UploadPicture(file, fmt.Sprintf("listing-%d", listing.ID), "listings")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload picture",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Model(&listing).Update("picture_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save picture URL",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"picture_url": url})
}
