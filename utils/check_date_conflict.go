package utils

import (
	"gorm.io/gorm"

	"household-services-api/models"
)

// HasDateConflict reports whether the provider already holds a pending or
// confirmed booking on the given date. excludeBookingID skips the booking
// itself when a date change is rechecked during an edit.
//
// Callers run this inside the transaction that inserts or updates the booking;
// the partial unique index on bookings (provider_id, booking_date) is what
// guarantees exclusivity if two requests race past this check.
func HasDateConflict(tx *gorm.DB, providerID uint, bookingDate string, excludeBookingID uint) (bool, error) {
	activeStatuses := []models.BookingStatus{models.StatusPending, models.StatusConfirmed}

	query := tx.Model(&models.Booking{}).
		Where("provider_id = ? AND booking_date = ? AND status IN ?", providerID, bookingDate, activeStatuses)
	if excludeBookingID != 0 {
		query = query.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
