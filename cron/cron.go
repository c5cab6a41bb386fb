package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"servicehub/controllers"
	"servicehub/db"
	"servicehub/models"
	"servicehub/utils"
)

// StartCronJobs initializes and starts the background scheduler
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()

	// Sweep expired quotes every minute
	_, err := c.AddFunc("* * * * *", expirePendingQuotes)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	// Run every minute to check for bookings in the next hour
	_, err = c.AddFunc("* * * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// expirePendingQuotes moves pending quotes past their deadline to expired.
// Guards also reject expired-by-clock quotes at accept time, so a sweep
// that lags by a minute cannot let a stale quote through.
func expirePendingQuotes() {
	var quotes []models.Quote
	err := db.DB.
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.QuotePending, time.Now()).
		Find(&quotes).Error
	if err != nil {
		log.Printf("Error fetching quotes for expiry: %v", err)
		return
	}
	if len(quotes) == 0 {
		return
	}

	for _, quote := range quotes {
		if err := db.DB.Model(&quote).Update("status", models.QuoteExpired).Error; err != nil {
			log.Printf("Failed to expire quote %d: %v", quote.ID, err)
			continue
		}
		controllers.CreateNotification(quote.ProviderID, models.NotificationQuote,
			fmt.Sprintf("Your quote of $%.2f expired without a response.", quote.Price),
			fmt.Sprintf("/requests/%d", quote.RequestID))
		log.Printf("Expired quote %d", quote.ID)
	}
}

// sendBookingReminders emails customers about bookings starting in about an hour
func sendBookingReminders() {
	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var bookings []models.Booking
	err := db.DB.Preload("Customer").Preload("Provider").Preload("Listing").
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", models.BookingScheduled, startWindow, endWindow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		controllers.CreateNotification(booking.CustomerID, models.NotificationBooking,
			fmt.Sprintf("Reminder: your booking for '%s' starts at %s.",
				booking.Listing.Title, booking.ScheduledTime.Format("15:04")),
			fmt.Sprintf("/bookings/%d", booking.ID))
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.Customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Booking - %s", booking.Listing.Title)
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>This is a reminder for your upcoming booking scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Scheduled Time:</strong> %s</li>
		</ul>
		<p>If you need to cancel, please do so from your bookings page.</p>
		<p>Best regards,</p>
		<p>The ServiceHub Team</p>
	`, booking.Listing.Title, booking.Provider.Email,
		booking.ScheduledTime.Format("2006-01-02 15:04:05"))

	return utils.SendEmail(booking.Customer.Email, subject, body)
}
