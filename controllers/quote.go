package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"servicehub/db"
	"servicehub/lifecycle"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"
)

// CreateQuote lets a provider quote a request against one of their own
// listings. The first quote moves the request from open to quoted.
func CreateQuote(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}

	var quote models.Quote
	if err := c.BodyParser(&quote); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if quote.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Price must be positive",
		})
	}

	var request models.Request
	if err := db.DB.First(&request, quote.RequestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Request not found",
		})
	}

	var listing models.Listing
	if err := db.DB.Where("id = ? AND user_id = ?", quote.ListingID, actor.ID).First(&listing).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found or not owned by user",
		})
	}

	if err := lifecycle.CanCreateQuote(request, listing, lifecycle.Actor{ID: actor.ID, Role: actor.Role}); err != nil {
		return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	quote.ProviderID = actor.ID
	quote.Status = models.QuotePending

	// Quote creation and the implied request transition land together.
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}
		next := lifecycle.RequestStatusAfterQuoteCreated(request.Status)
		if next != request.Status {
			if err := tx.Model(&request).Update("status", next).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create quote",
			Error:   err.Error(),
		})
	}

	CreateNotification(request.UserID, models.NotificationQuote,
		fmt.Sprintf("You received a quote for '%s' - $%.2f", listing.Title, quote.Price),
		fmt.Sprintf("/request/%d", request.ID))

	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetAllQuotes lists the authenticated provider's quotes
func GetAllQuotes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var quotes []models.Quote
	if err := db.DB.Preload("Listing").Where("provider_id = ?", userID).Order("created_at DESC").Find(&quotes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch quotes",
			Error:   err.Error(),
		})
	}
	return c.JSON(quotes)
}

// GetQuotesForRequest returns every quote on a request
func GetQuotesForRequest(c *fiber.Ctx) error {
	requestID := c.Params("requestID")
	var quotes []models.Quote
	if err := db.DB.Preload("Listing").Preload("Provider", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, email, role")
	}).Where("request_id = ?", requestID).Find(&quotes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch quotes",
			Error:   err.Error(),
		})
	}
	return c.JSON(quotes)
}

// GetQuote returns a single quote; only the quoting provider or the
// customer owning the parent request may view it.
func GetQuote(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var quote models.Quote
	if err := db.DB.Preload("Listing").First(&quote, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Quote not found",
			Error:   err.Error(),
		})
	}

	var request models.Request
	if err := db.DB.First(&request, quote.RequestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Associated request not found",
		})
	}

	if userID != quote.ProviderID && userID != request.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this quote",
		})
	}
	return c.JSON(quote)
}

// UpdateQuoteStatus accepts or rejects a pending quote (request owner only).
// Accepting moves the request to booked and freezes every sibling quote;
// scheduling the actual booking is a separate second step.
func UpdateQuoteStatus(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}
	id := c.Params("id")

	type StatusUpdate struct {
		Status models.QuoteStatus `json:"status"`
	}
	update := new(StatusUpdate)
	if err := c.BodyParser(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if update.Status != models.QuoteAccepted && update.Status != models.QuoteRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	var quote models.Quote
	if err := db.DB.First(&quote, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Quote not found",
			Error:   err.Error(),
		})
	}

	var request models.Request
	if err := db.DB.First(&request, quote.RequestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Associated request not found",
		})
	}

	lactor := lifecycle.Actor{ID: actor.ID, Role: actor.Role}

	if update.Status == models.QuoteAccepted {
		var acceptedCount int64
		if err := db.DB.Model(&models.Quote{}).
			Where("request_id = ? AND status = ? AND id <> ?", quote.RequestID, models.QuoteAccepted, quote.ID).
			Count(&acceptedCount).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to check existing quotes",
				Error:   err.Error(),
			})
		}

		if err := lifecycle.CanAcceptQuote(quote, request, acceptedCount > 0, lactor, time.Now()); err != nil {
			return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&quote).Update("status", models.QuoteAccepted).Error; err != nil {
				return err
			}
			return tx.Model(&request).Update("status", models.RequestBooked).Error
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to accept quote",
				Error:   err.Error(),
			})
		}
		quote.Status = models.QuoteAccepted

		CreateNotification(quote.ProviderID, models.NotificationQuote,
			fmt.Sprintf("Your quote of $%.2f was accepted", quote.Price),
			fmt.Sprintf("/quote/%d", quote.ID))
	} else {
		if err := lifecycle.CanDeclineQuote(quote, request, lactor); err != nil {
			return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := db.DB.Model(&quote).Update("status", models.QuoteRejected).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to reject quote",
				Error:   err.Error(),
			})
		}
		quote.Status = models.QuoteRejected

		CreateNotification(quote.ProviderID, models.NotificationQuote,
			fmt.Sprintf("Your quote of $%.2f was declined", quote.Price),
			fmt.Sprintf("/quote/%d", quote.ID))
	}

	return c.JSON(quote)
}

// DeleteQuote withdraws a pending quote (quoting provider only)
func DeleteQuote(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var quote models.Quote
	if err := db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&quote).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found or not owned by user",
		})
	}
	if quote.Status != models.QuotePending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only pending quotes can be withdrawn",
		})
	}

	if err := db.DB.Delete(&quote).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete quote",
			Error:   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"detail": "Quote deleted"})
}
