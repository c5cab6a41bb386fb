package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"servicehub/db"
	"servicehub/lifecycle"
	"servicehub/middleware"
	"servicehub/models"
	"servicehub/utils"
)

// CreateBooking schedules a booking from an accepted quote (customer only).
// This is step two of quote acceptance and may happen long after step one;
// an accepted quote with no booking is a normal resting state.
func CreateBooking(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}

	type BookingInput struct {
		QuoteID       uint      `json:"quote_id"`
		ScheduledTime time.Time `json:"scheduled_time"`
	}
	input := new(BookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var quote models.Quote
	if err := db.DB.First(&quote, input.QuoteID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Quote not found",
		})
	}

	var request models.Request
	if err := db.DB.First(&request, quote.RequestID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Associated request not found",
		})
	}

	hasBooking, err := quote.HasBooking(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to check existing bookings",
			Error:   err.Error(),
		})
	}

	lactor := lifecycle.Actor{ID: actor.ID, Role: actor.Role}
	if err := lifecycle.CanScheduleBooking(quote, request, hasBooking, lactor, input.ScheduledTime, time.Now()); err != nil {
		return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	booking := models.Booking{
		QuoteID:       quote.ID,
		CustomerID:    actor.ID,
		ProviderID:    quote.ProviderID,
		ListingID:     quote.ListingID,
		ScheduledTime: input.ScheduledTime,
		Status:        models.BookingScheduled,
	}
	if err := db.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	var listing models.Listing
	if err := db.DB.First(&listing, quote.ListingID).Error; err == nil {
		formatted := booking.ScheduledTime.Format("2006-01-02 at 15:04")
		CreateNotification(quote.ProviderID, models.NotificationBooking,
			fmt.Sprintf("Your service '%s' has been booked for %s", listing.Title, formatted),
			fmt.Sprintf("/booking/%d", booking.ID))
	}

	// Confirmation email is best effort
	go func() {
		var customer models.User
		if err := db.DB.First(&customer, booking.CustomerID).Error; err != nil {
			return
		}
		body := fmt.Sprintf(`
			<p>Your booking has been scheduled.</p>
			<ul>
				<li><strong>Service:</strong> %s</li>
				<li><strong>Time:</strong> %s</li>
				<li><strong>Price:</strong> $%.2f</li>
			</ul>`,
			listing.Title, booking.ScheduledTime.Format(time.RFC1123), quote.Price)
		if err := utils.SendEmail(customer.Email, "Booking confirmed", body); err != nil {
			log.Printf("Failed to send booking confirmation to %s: %v", customer.Email, err)
		}
	}()

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings returns bookings where the current user is either party
func GetMyBookings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var bookings []models.Booking
	if err := db.DB.Preload("Quote").Preload("Listing").
		Where("customer_id = ? OR provider_id = ?", userID, userID).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}
	return c.JSON(bookings)
}

// GetBooking returns a single booking; parties only. Anyone else gets the
// same 404 as a missing booking.
func GetBooking(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.Preload("Quote").Preload("Listing").First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found or not authorized",
		})
	}
	if !booking.IsParty(userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found or not authorized",
		})
	}
	return c.JSON(booking)
}

// UpdateBookingStatus moves a booking through its lifecycle. The provider
// starts and completes the work; the customer cancels, optionally with a
// free-text reason.
func UpdateBookingStatus(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}
	id := c.Params("id")

	type StatusUpdate struct {
		Status       models.BookingStatus `json:"status"`
		CancelReason string               `json:"cancel_reason"`
	}
	update := new(StatusUpdate)
	if err := c.BodyParser(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	lactor := lifecycle.Actor{ID: actor.ID, Role: actor.Role}
	if err := lifecycle.CanUpdateBooking(booking, update.Status, lactor); err != nil {
		return c.Status(lifecycleStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	updates := map[string]interface{}{"status": update.Status}
	if update.Status == models.BookingCancelled && update.CancelReason != "" {
		updates["cancel_reason"] = update.CancelReason
	}
	if err := db.DB.Model(&booking).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update booking",
			Error:   err.Error(),
		})
	}
	booking.Status = update.Status

	switch update.Status {
	case models.BookingCompleted:
		CreateNotification(booking.CustomerID, models.NotificationBooking,
			"Your booking was completed. You can now leave a review.",
			fmt.Sprintf("/booking/%d", booking.ID))
	case models.BookingCancelled:
		CreateNotification(booking.ProviderID, models.NotificationBooking,
			"A booking was cancelled by the customer",
			fmt.Sprintf("/booking/%d", booking.ID))
	}

	return c.JSON(booking)
}

// CreateBookingReview lets either party review the other once the booking
// is completed; one review per direction. A concurrent duplicate loses to
// the unique index and surfaces as a conflict, not a generic failure.
func CreateBookingReview(c *fiber.Ctx) error {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		return nil
	}
	id := c.Params("id")

	type ReviewInput struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
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
	if err := db.DB.First(&booking, id).Error; err != nil {
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
			if err := profile.RecalculateRating(tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Losing the duplicate race lands here via the unique index.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this booking.",
		})
	}

	var listing models.Listing
	serviceName := "your service"
	if err := db.DB.First(&listing, booking.ListingID).Error; err == nil {
		serviceName = listing.Title
	}
	message := fmt.Sprintf("You received a %d-star review for %s", input.Rating, serviceName)
	if actor.ID == booking.ProviderID {
		message = fmt.Sprintf("You received a %d-star review from a service provider", input.Rating)
	}
	CreateNotification(revieweeID, models.NotificationReview, message,
		fmt.Sprintf("/booking/%d", booking.ID))

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetBookingReview answers "did I already review this booking": the
// existence check clients must run before offering the review form. 404
// means no review yet.
func GetBookingReview(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}
	if !booking.IsParty(userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found or not authorized",
		})
	}

	var review models.Review
	if err := db.DB.Where("booking_id = ? AND reviewer_id = ?", booking.ID, userID).
		First(&review).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No review for this booking by the current user",
		})
	}
	return c.JSON(review)
}
