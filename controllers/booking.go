package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"household-services-api/db"
	"household-services-api/middleware"
	"household-services-api/models"
	"household-services-api/statemachine"
	"household-services-api/utils"
)

var errDateConflict = errors.New("provider already booked on this date")

// bookingEditError marks a caller mistake during an edit, as opposed to an
// unexpected database failure.
type bookingEditError struct {
	reason string
}

func (e *bookingEditError) Error() string {
	return e.reason
}

type BookingCreateInput struct {
	ProviderID    uint   `json:"provider_id" validate:"required"`
	ServiceName   string `json:"service_name" validate:"required"`
	BookingDate   string `json:"booking_date" validate:"required"`
	BookingTime   string `json:"booking_time" validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"required,min=1"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// CreateBooking books a provider for a date. The caller identifies as
// customer_id in the query string. The total is priced off the provider's
// current hourly rate, and the same-day exclusivity rule is enforced inside
// the insert transaction.
func CreateBooking(c *fiber.Ctx) error {
	customerID := c.QueryInt("customer_id")
	if customerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "customer_id query parameter is required",
		})
	}

	input := new(BookingCreateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing or invalid fields",
			Error:   err.Error(),
		})
	}
	if _, err := time.Parse("2006-01-02", input.BookingDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking_date, use YYYY-MM-DD",
		})
	}
	if _, err := time.Parse("15:04", input.BookingTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking_time, use HH:MM",
		})
	}

	var provider models.Provider
	if err := db.DB.First(&provider, input.ProviderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	booking := models.Booking{
		CustomerID:    uint(customerID),
		ProviderID:    provider.ID,
		ServiceName:   input.ServiceName,
		BookingDate:   input.BookingDate,
		BookingTime:   input.BookingTime,
		DurationHours: input.DurationHours,
		TotalAmount:   provider.HourlyRate * float64(input.DurationHours),
		Address:       input.Address,
		Notes:         input.Notes,
		Status:        models.StatusPending,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		conflict, err := utils.HasDateConflict(tx, provider.ID, booking.BookingDate, 0)
		if err != nil {
			return err
		}
		if conflict {
			return errDateConflict
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		return tx.Model(&models.Provider{}).
			Where("id = ?", provider.ID).
			Update("total_bookings", gorm.Expr("total_bookings + 1")).Error
	})
	if errors.Is(err, errDateConflict) || utils.IsUniqueViolation(err) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Professional is already booked on this date. Please choose another date or professional.",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create booking",
			Error:   err.Error(),
		})
	}

	sendBookingEmails(&booking)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetCustomerBookings lists a customer's bookings, newest first
func GetCustomerBookings(c *fiber.Ctx) error {
	customerID := c.Params("id")

	var bookings []models.Booking
	if err := db.DB.Preload("Provider").Preload("Provider.User").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}
	return c.JSON(bookings)
}

// GetProviderBookings lists all bookings held by a provider
func GetProviderBookings(c *fiber.Ctx) error {
	providerID := c.Params("id")

	var bookings []models.Booking
	if err := db.DB.Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	for i := range bookings {
		bookings[i].Customer.Password = ""
	}
	return c.JSON(bookings)
}

// GetBooking returns a booking by ID
func GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.Preload("Customer").Preload("Provider").First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	booking.Customer.Password = ""
	booking.Provider.User.Password = ""
	return c.JSON(booking)
}

// UpdateBookingStatus moves a booking through its state machine. Completing a
// booking settles the commission split and the provider payout exactly once.
func UpdateBookingStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	newStatus := models.BookingStatus(c.Query("new_status"))

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if err := statemachine.CanTransition(booking.Status, newStatus); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if newStatus == models.StatusCompleted {
			return booking.MarkCompleted(tx)
		}
		booking.Status = newStatus
		return tx.Save(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update booking status",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.MessageResponse{
		Message: fmt.Sprintf("Booking status updated to %s", newStatus),
	})
}

type BookingUpdateInput struct {
	ServiceName   string `json:"service_name"`
	BookingDate   string `json:"booking_date"`
	BookingTime   string `json:"booking_time"`
	DurationHours int    `json:"duration_hours"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// UpdateBooking edits a booking while it is still pending or confirmed. A date
// change re-runs the same-day conflict check (excluding the booking itself); a
// duration change reprices against the provider's current hourly rate.
func UpdateBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(BookingUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var booking models.Booking
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			return err
		}

		if booking.Status != models.StatusPending && booking.Status != models.StatusConfirmed {
			return &bookingEditError{fmt.Sprintf("booking in status %s can no longer be edited", booking.Status)}
		}

		if input.BookingDate != "" && input.BookingDate != booking.BookingDate {
			if _, err := time.Parse("2006-01-02", input.BookingDate); err != nil {
				return &bookingEditError{"invalid booking_date, use YYYY-MM-DD"}
			}
			conflict, err := utils.HasDateConflict(tx, booking.ProviderID, input.BookingDate, booking.ID)
			if err != nil {
				return err
			}
			if conflict {
				return errDateConflict
			}
			booking.BookingDate = input.BookingDate
		}

		if input.BookingTime != "" {
			if _, err := time.Parse("15:04", input.BookingTime); err != nil {
				return &bookingEditError{"invalid booking_time, use HH:MM"}
			}
			booking.BookingTime = input.BookingTime
		}

		if input.DurationHours > 0 && input.DurationHours != booking.DurationHours {
			var provider models.Provider
			if err := tx.First(&provider, booking.ProviderID).Error; err != nil {
				return err
			}
			booking.DurationHours = input.DurationHours
			booking.TotalAmount = provider.HourlyRate * float64(input.DurationHours)
		}

		if input.ServiceName != "" {
			booking.ServiceName = input.ServiceName
		}
		if input.Address != "" {
			booking.Address = input.Address
		}
		if input.Notes != "" {
			booking.Notes = input.Notes
		}

		return tx.Save(&booking).Error
	})
	if errors.Is(err, errDateConflict) || utils.IsUniqueViolation(err) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Professional is already booked on this date. Please choose another date or professional.",
		})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}
	var editErr *bookingEditError
	if errors.As(err, &editErr) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot update booking",
			Error:   editErr.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update booking",
			Error:   err.Error(),
		})
	}

	return c.JSON(booking)
}

// RequestReschedule lets the provider propose a new date/time. The booking
// parks in reschedule_requested until the customer responds.
func RequestReschedule(c *fiber.Ctx) error {
	id := c.Params("id")
	suggestedDate := c.Query("suggested_date")
	suggestedTime := c.Query("suggested_time")

	if _, err := time.Parse("2006-01-02", suggestedDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid suggested_date, use YYYY-MM-DD",
		})
	}
	if _, err := time.Parse("15:04", suggestedTime); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid suggested_time, use HH:MM",
		})
	}

	var booking models.Booking
	if err := db.DB.Preload("Provider").First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	callerID, _ := middleware.CallerID(c)
	callerRole, _ := middleware.CallerRole(c)
	if booking.Provider.UserID != callerID && callerRole != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the booked provider can request a reschedule",
		})
	}

	if err := statemachine.CanTransition(booking.Status, models.StatusRescheduleRequested); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid status transition",
			Error:   err.Error(),
		})
	}

	booking.SuggestedDate = suggestedDate
	booking.SuggestedTime = suggestedTime
	booking.Status = models.StatusRescheduleRequested
	if err := db.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to request reschedule",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.MessageResponse{Message: "Reschedule requested"})
}

// RespondReschedule is the customer's answer to a reschedule request. Accept
// adopts the suggested date/time and confirms; reject falls back to pending.
// The suggestion is cleared either way.
func RespondReschedule(c *fiber.Ctx) error {
	id := c.Params("id")
	accept := c.QueryBool("accept")

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	callerID, _ := middleware.CallerID(c)
	callerRole, _ := middleware.CallerRole(c)
	if booking.CustomerID != callerID && callerRole != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the booking's customer can respond to a reschedule",
		})
	}

	if booking.Status != models.StatusRescheduleRequested {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "No reschedule request is pending on this booking",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if accept {
			booking.BookingDate = booking.SuggestedDate
			booking.BookingTime = booking.SuggestedTime
			booking.Status = models.StatusConfirmed
		} else {
			booking.Status = models.StatusPending
		}
		booking.SuggestedDate = ""
		booking.SuggestedTime = ""

		// The booking sat outside the active statuses while parked, so its
		// target date may have been taken in the meantime
		conflict, err := utils.HasDateConflict(tx, booking.ProviderID, booking.BookingDate, booking.ID)
		if err != nil {
			return err
		}
		if conflict {
			return errDateConflict
		}
		return tx.Save(&booking).Error
	})
	if errors.Is(err, errDateConflict) || utils.IsUniqueViolation(err) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Professional is already booked on this date. Please choose another date or professional.",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to respond to reschedule",
			Error:   err.Error(),
		})
	}

	return c.JSON(booking)
}

// CancelBooking cancels any non-terminal booking
func CancelBooking(c *fiber.Ctx) error {
	id := c.Params("id")

	var booking models.Booking
	if err := db.DB.First(&booking, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if booking.IsTerminal() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Booking is already %s", booking.Status),
		})
	}
	if err := statemachine.CanTransition(booking.Status, models.StatusCancelled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Cannot cancel this booking",
			Error:   err.Error(),
		})
	}

	booking.Status = models.StatusCancelled
	if err := db.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to cancel booking",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.MessageResponse{Message: "Booking cancelled successfully"})
}

// sendBookingEmails notifies both sides of a new booking. Email failure never
// fails the request.
func sendBookingEmails(booking *models.Booking) {
	var customer models.User
	var provider models.Provider
	if err := db.DB.First(&customer, booking.CustomerID).Error; err != nil {
		return
	}
	if err := db.DB.Preload("User").First(&provider, booking.ProviderID).Error; err != nil {
		return
	}

	customerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking has been placed and is waiting for the provider to confirm.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Duration:</strong> %d hour(s)</li>
			<li><strong>Total:</strong> %.2f</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Home Services Team</p>
	`, customer.Name, booking.ServiceName, provider.User.Name,
		booking.BookingDate, booking.BookingTime, booking.DurationHours, booking.TotalAmount)
	if err := utils.SendEmail(customer.Email, "Booking Placed", customerBody); err != nil {
		log.Printf("Failed to send booking email to customer %d: %v", customer.ID, err)
	}

	providerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new booking request.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Customer:</strong> %s</li>
			<li><strong>Date:</strong> %s at %s</li>
			<li><strong>Duration:</strong> %d hour(s)</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Home Services Team</p>
	`, provider.User.Name, booking.ServiceName, customer.Name,
		booking.BookingDate, booking.BookingTime, booking.DurationHours)
	if err := utils.SendEmail(provider.User.Email, "New Booking Request", providerBody); err != nil {
		log.Printf("Failed to send booking email to provider %d: %v", provider.ID, err)
	}
}
