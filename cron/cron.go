package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/utils"
)

// StartCronJobs initializes and starts the scheduler for booking reminders
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Every morning at 08:00, remind customers about tomorrow's bookings
	_, err := c.AddFunc("0 8 * * *", sendBookingReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for booking reminders")
}

// sendBookingReminders emails customers whose confirmed bookings fall tomorrow
func sendBookingReminders() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var bookings []models.Booking
	err := db.DB.Preload("Customer").Preload("Provider").Preload("Provider.User").
		Where("status = ? AND booking_date = ?", models.StatusConfirmed, tomorrow).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	fmt.Printf("Found %d bookings for reminders\n", len(bookings))

	for _, booking := range bookings {
		if err := sendReminderEmail(&booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.Customer.Email)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(booking *models.Booking) error {
	subject := fmt.Sprintf("Reminder: Upcoming Booking - %s", booking.ServiceName)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your booking scheduled tomorrow.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Duration:</strong> %d hour(s)</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
		<p>If you need to reschedule or cancel, please do so as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Home Services Team</p>
	`, booking.Customer.Name, booking.ServiceName, booking.Provider.User.Name,
		booking.BookingDate, booking.BookingTime, booking.DurationHours, booking.Address)

	return utils.SendEmail(booking.Customer.Email, subject, body)
}
