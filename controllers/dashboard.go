package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"servicehub/db"
	"servicehub/lifecycle"
	"servicehub/models"
	"servicehub/redis"
)

func dashboardCacheKey(kind string, userID uint) string {
	return fmt.Sprintf("dashboard:%s:%d", kind, userID)
}

// cachedDashboard serves a previously computed payload when redis has one.
func cachedDashboard(c *fiber.Ctx, key string) bool {
	if redis.Client == nil {
		return false
	}
	cached, err := redis.Client.Get(redis.Ctx, key).Bytes()
	if err != nil {
		return false
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Send(cached)
	return true
}

func cacheDashboard(key string, payload any) {
	if redis.Client == nil {
		return
	}
	if data, err := json.Marshal(payload); err == nil {
		redis.Client.Set(redis.Ctx, key, data, time.Minute)
	}
}

// GetProviderDashboard returns an overview of the provider's marketplace activity
func GetProviderDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	cacheKey := dashboardCacheKey("provider", userID)
	if cachedDashboard(c, cacheKey) {
		return nil
	}

	var statistics struct {
		TotalListings    int64     `json:"total_listings"`
		ActiveListings   int64     `json:"active_listings"`
		OpenRequests     int64     `json:"open_requests"`
		PendingQuotes    int64     `json:"pending_quotes"`
		AcceptedQuotes   int64     `json:"accepted_quotes"`
		UpcomingBookings int64     `json:"upcoming_bookings"`
		CompletedCount   int64     `json:"completed_count"`
		CancelledCount   int64     `json:"cancelled_count"`
		TotalRevenue     float64   `json:"total_revenue"`
		AverageRating    float64   `json:"average_rating"`
		LastUpdated      time.Time `json:"last_updated"`
	}

	db.DB.Model(&models.Listing{}).Where("user_id = ?", userID).Count(&statistics.TotalListings)
	db.DB.Model(&models.Listing{}).Where("user_id = ? AND available = ?", userID, true).Count(&statistics.ActiveListings)

	// Requests still open on this provider's listings
	db.DB.Model(&models.Request{}).
		Joins("JOIN listings ON listings.id = requests.listing_id").
		Where("listings.user_id = ? AND requests.status IN ?", userID,
			[]models.RequestStatus{models.RequestOpen, models.RequestQuoted}).
		Count(&statistics.OpenRequests)

	db.DB.Model(&models.Quote{}).Where("provider_id = ? AND status = ?", userID, models.QuotePending).Count(&statistics.PendingQuotes)
	db.DB.Model(&models.Quote{}).Where("provider_id = ? AND status = ?", userID, models.QuoteAccepted).Count(&statistics.AcceptedQuotes)

	db.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status = ? AND scheduled_time > ?", userID, models.BookingScheduled, time.Now()).
		Count(&statistics.UpcomingBookings)
	db.DB.Model(&models.Booking{}).Where("provider_id = ? AND status = ?", userID, models.BookingCompleted).Count(&statistics.CompletedCount)
	db.DB.Model(&models.Booking{}).Where("provider_id = ? AND status = ?", userID, models.BookingCancelled).Count(&statistics.CancelledCount)

	// Revenue from completed bookings, priced by the accepted quote
	var revenueResult struct {
		TotalRevenue float64
	}
	db.DB.Table("bookings").
		Joins("JOIN quotes ON bookings.quote_id = quotes.id").
		Where("bookings.provider_id = ? AND bookings.status = ?", userID, models.BookingCompleted).
		Select("COALESCE(SUM(quotes.price), 0) as total_revenue").
		Scan(&revenueResult)
	statistics.TotalRevenue = revenueResult.TotalRevenue

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		statistics.AverageRating = profile.AverageRating
	}

	statistics.LastUpdated = time.Now()
	cacheDashboard(cacheKey, statistics)
	return c.JSON(statistics)
}

// GetCustomerDashboard returns an overview of the customer's marketplace activity
func GetCustomerDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	cacheKey := dashboardCacheKey("customer", userID)
	if cachedDashboard(c, cacheKey) {
		return nil
	}

	var statistics struct {
		OpenRequests     int64     `json:"open_requests"`
		QuotesReceived   int64     `json:"quotes_received"`
		UpcomingBookings int64     `json:"upcoming_bookings"`
		CompletedCount   int64     `json:"completed_count"`
		PendingReviews   int64     `json:"pending_reviews"`
		TotalSpent       float64   `json:"total_spent"`
		LastUpdated      time.Time `json:"last_updated"`
	}

	db.DB.Model(&models.Request{}).
		Where("user_id = ? AND status IN ?", userID,
			[]models.RequestStatus{models.RequestOpen, models.RequestQuoted}).
		Count(&statistics.OpenRequests)

	db.DB.Model(&models.Quote{}).
		Joins("JOIN requests ON requests.id = quotes.request_id").
		Where("requests.user_id = ? AND quotes.status = ?", userID, models.QuotePending).
		Count(&statistics.QuotesReceived)

	db.DB.Model(&models.Booking{}).
		Where("customer_id = ? AND status = ? AND scheduled_time > ?", userID, models.BookingScheduled, time.Now()).
		Count(&statistics.UpcomingBookings)
	db.DB.Model(&models.Booking{}).Where("customer_id = ? AND status = ?", userID, models.BookingCompleted).Count(&statistics.CompletedCount)

	// Completed bookings the customer has not reviewed yet
	db.DB.Model(&models.Booking{}).
		Where("customer_id = ? AND status = ?", userID, models.BookingCompleted).
		Where("NOT EXISTS (SELECT 1 FROM reviews WHERE reviews.booking_id = bookings.id AND reviews.reviewer_id = ? AND reviews.deleted_at IS NULL)", userID).
		Count(&statistics.PendingReviews)

	var spentResult struct {
		TotalSpent float64
	}
	db.DB.Table("bookings").
		Joins("JOIN quotes ON bookings.quote_id = quotes.id").
		Where("bookings.customer_id = ? AND bookings.status = ?", userID, models.BookingCompleted).
		Select("COALESCE(SUM(quotes.price), 0) as total_spent").
		Scan(&spentResult)
	statistics.TotalSpent = spentResult.TotalSpent

	statistics.LastUpdated = time.Now()
	cacheDashboard(cacheKey, statistics)
	return c.JSON(statistics)
}

// GetRecentBookings returns the most recent bookings for the authenticated user
func GetRecentBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}
	role, _ := c.Locals("role").(string)

	limit := 5
	if c.Query("limit") != "" {
		parsedLimit := c.QueryInt("limit")
		if parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	query := db.DB.
		Preload("Quote").
		Preload("Customer").
		Preload("Provider")

	if role == string(models.RoleProvider) {
		query = query.Where("provider_id = ?", userID)
	} else if role != string(models.RoleAdmin) {
		query = query.Where("customer_id = ?", userID)
	}

	var bookings []models.Booking
	if err := query.
		Order("created_at desc").
		Limit(limit).
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	type recentBooking struct {
		models.Booking
		Actions []lifecycle.Action `json:"actions"`
	}
	out := make([]recentBooking, 0, len(bookings))
	actor := lifecycle.Actor{ID: userID, Role: models.Role(role)}
	for _, b := range bookings {
		reviewed := lifecycle.FlagUnknown
		if mine, err := b.HasReviewBy(db.DB, userID); err == nil {
			reviewed = lifecycle.FlagFromBool(mine)
		}
		out = append(out, recentBooking{
			Booking: b,
			Actions: lifecycle.BookingActions(b, actor, reviewed),
		})
	}

	return c.JSON(out)
}
