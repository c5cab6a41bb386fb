package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/lifecycle"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"
)

// lifecycleStatus maps a failed lifecycle guard to the HTTP status the
// teacher-style handlers return: permission problems are 403, state
// conflicts are 409.
func lifecycleStatus(err error) int {
	if errors.Is(err, lifecycle.ErrNotPermitted) {
		return fiber.StatusForbidden
	}
	return fiber.StatusConflict
}

// CreateRequest creates a service request against a listing (customer only)
func CreateRequest(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}

	var request models.Request
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var listing models.Listing
	if err := db.DB.First(&listing, request.ListingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("Listing with ID %d not found", request.ListingID),
		})
	}

	if err := lifecycle.CanCreateRequest(listing, lifecycle.Actor{ID: actor.ID, Role: actor.Role}); err != nil {
		if errors.Is(err, lifecycle.ErrNotPermitted) && listing.UserID == actor.ID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "You cannot request your own service",
			})
		}
		if errors.Is(err, lifecycle.ErrIllegalTransition) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "This service is currently unavailable for booking",
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only customers can create service requests",
		})
	}

	if !request.PreferredDate.IsZero() && request.PreferredDate.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Preferred date cannot be in the past",
		})
	}

	request.UserID = actor.ID
	request.Status = models.RequestOpen
	if err := db.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create request",
			Error:   err.Error(),
		})
	}

	CreateNotification(listing.UserID, models.NotificationRequest,
		fmt.Sprintf("New request received for '%s'", listing.Title),
		fmt.Sprintf("/request/%d", request.ID))

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetAllRequests lists requests with optional service, location and status filters
func GetAllRequests(c *fiber.Ctx) error {
	query := db.DB.Preload("Listing").Preload("Listing.Service")

	if serviceID := c.Query("service_id"); serviceID != "" {
		query = query.Joins("JOIN listings ON listings.id = requests.listing_id").
			Where("listings.service_id = ?", serviceID)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("requests.location ILIKE ?", "%"+location+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("requests.status = ?", status)
	}

	var requests []models.Request
	if err := query.Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch requests",
			Error:   err.Error(),
		})
	}
	return c.JSON(requests)
}

// GetMyRequests returns the authenticated customer's requests
func GetMyRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var requests []models.Request
	if err := db.DB.Preload("Listing").Preload("Quotes").
		Where("user_id = ?", userID).Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch requests",
			Error:   err.Error(),
		})
	}
	return c.JSON(requests)
}

// GetRequest returns a single request by ID
func GetRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	var request models.Request
	if err := db.DB.Preload("Listing").Preload("Quotes").First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Request not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(request)
}

// UpdateRequest edits a request's free-form fields (owner only). Status
// never changes here; it moves through quote and close transitions.
func UpdateRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var request models.Request
	if err := db.DB.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Request not found",
			Error:   err.Error(),
		})
	}
	if request.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to edit this request",
		})
	}
	if lifecycle.RequestTerminal(request.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Request can no longer be edited",
		})
	}

	var input models.Request
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	updates := map[string]interface{}{}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if !input.PreferredDate.IsZero() {
		updates["preferred_date"] = input.PreferredDate
	}
	if len(updates) > 0 {
		if err := db.DB.Model(&request).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to update request",
				Error:   err.Error(),
			})
		}
	}
	return c.JSON(request)
}

// CloseRequest retires an open or quoted request (owner only)
func CloseRequest(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}
	id := c.Params("id")

	var request models.Request
	if err := db.DB.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Request not found",
			Error:   err.Error(),
		})
	}

	if err := lifecycle.CanCloseRequest(request, lifecycle.Actor{ID: actor.ID, Role: actor.Role}); err != nil {
		return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := db.DB.Model(&request).Update("status", models.RequestClosed).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to close request",
			Error:   err.Error(),
		})
	}
	request.Status = models.RequestClosed
	return c.JSON(request)
}

// DeleteRequest deletes a request (owner only)
func DeleteRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var request models.Request
	if err := db.DB.First(&request, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Request not found",
			Error:   err.Error(),
		})
	}
	if request.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this request",
		})
	}

	if err := db.DB.Delete(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete request",
			Error:   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
