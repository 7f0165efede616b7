package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"household-services-api/db"
	"household-services-api/models"
)

func TestBookingLifecycle(t *testing.T) {
	app := setupTestApp(t)
	customer := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	_, provider := seedProvider(t, "bob@example.com", 500, true)

	booking := createBooking(t, app, customer.ID, provider.ID, "2026-09-10")
	if booking.Status != models.StatusPending {
		t.Errorf("expected new booking to be pending, got %s", booking.Status)
	}
	if booking.TotalAmount != 1000 {
		t.Errorf("expected total 500 x 2h = 1000, got %.2f", booking.TotalAmount)
	}

	var reloaded models.Provider
	if err := db.DB.First(&reloaded, provider.ID).Error; err != nil {
		t.Fatalf("failed to reload provider: %v", err)
	}
	if reloaded.TotalBookings != 1 {
		t.Errorf("expected total_bookings 1, got %d", reloaded.TotalBookings)
	}

	resp, data := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/status?new_status=confirmed", booking.ID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 confirming booking, got %d: %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/status?new_status=completed", booking.ID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 completing booking, got %d: %s", resp.StatusCode, data)
	}

	var completed models.Booking
	if err := db.DB.First(&completed, booking.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Errorf("expected completed, got %s", completed.Status)
	}
	if completed.CommissionAmount != 150 {
		t.Errorf("expected commission 150, got %.2f", completed.CommissionAmount)
	}
	if completed.ProviderAmount != 850 {
		t.Errorf("expected provider amount 850, got %.2f", completed.ProviderAmount)
	}

	if err := db.DB.First(&reloaded, provider.ID).Error; err != nil {
		t.Fatalf("failed to reload provider: %v", err)
	}
	if reloaded.Earnings != 850 {
		t.Errorf("expected provider earnings 850, got %.2f", reloaded.Earnings)
	}
}

func TestBookingDateConflict(t *testing.T) {
	app := setupTestApp(t)
	alice := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	carol := seedUser(t, "Carol", "carol@example.com", models.RoleCustomer)
	_, provider := seedProvider(t, "bob@example.com", 300, true)

	first := createBooking(t, app, alice.ID, provider.ID, "2026-09-10")

	// Same provider, same date, different customer
	payload := map[string]any{
		"provider_id":    provider.ID,
		"service_name":   "Deep Cleaning",
		"booking_date":   "2026-09-10",
		"booking_time":   "15:00",
		"duration_hours": 1,
	}
	resp, data := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/bookings?customer_id=%d", carol.ID), payload, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for double booking, got %d: %s", resp.StatusCode, data)
	}

	// A different date is fine
	createBooking(t, app, carol.ID, provider.ID, "2026-09-11")

	// Cancelling the first booking frees its date
	resp, data = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/bookings/%d", first.ID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 cancelling booking, got %d: %s", resp.StatusCode, data)
	}
	createBooking(t, app, carol.ID, provider.ID, "2026-09-10")
}

func TestInvalidStatusTransition(t *testing.T) {
	app := setupTestApp(t)
	customer := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	_, provider := seedProvider(t, "bob@example.com", 200, true)

	booking := createBooking(t, app, customer.ID, provider.ID, "2026-09-10")

	// Completion requires confirmation first
	resp, data := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/status?new_status=completed", booking.ID), nil, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for pending -> completed, got %d: %s", resp.StatusCode, data)
	}

	// Terminal states stay terminal
	doJSON(t, app, http.MethodPatch, fmt.Sprintf("/bookings/%d/status?new_status=cancelled", booking.ID), nil, "")
	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/status?new_status=pending", booking.ID), nil, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for cancelled -> pending, got %d: %s", resp.StatusCode, data)
	}
}

func TestBookingEdit(t *testing.T) {
	app := setupTestApp(t)
	alice := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	_, provider := seedProvider(t, "bob@example.com", 400, true)

	first := createBooking(t, app, alice.ID, provider.ID, "2026-09-10")
	second := createBooking(t, app, alice.ID, provider.ID, "2026-09-11")

	// Moving the second booking onto the first one's date must conflict
	resp, data := doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/bookings/%d", second.ID),
		map[string]any{"booking_date": "2026-09-10"}, "")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 editing onto a taken date, got %d: %s", resp.StatusCode, data)
	}

	// Re-saving the same date must not conflict with itself
	resp, data = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/bookings/%d", first.ID),
		map[string]any{"booking_date": "2026-09-10", "booking_time": "14:00"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 editing own booking, got %d: %s", resp.StatusCode, data)
	}

	// A duration change reprices at the provider's current rate
	resp, data = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/bookings/%d", first.ID),
		map[string]any{"duration_hours": 3}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 changing duration, got %d: %s", resp.StatusCode, data)
	}
	var edited models.Booking
	decode(t, data, &edited)
	if edited.TotalAmount != 1200 {
		t.Errorf("expected repriced total 400 x 3h = 1200, got %.2f", edited.TotalAmount)
	}

	// A bad date format is a caller mistake, not a server failure
	resp, data = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/bookings/%d", second.ID),
		map[string]any{"booking_date": "10-09-2026"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date format, got %d: %s", resp.StatusCode, data)
	}

	// Completed bookings are frozen
	doJSON(t, app, http.MethodPatch, fmt.Sprintf("/bookings/%d/status?new_status=confirmed", first.ID), nil, "")
	doJSON(t, app, http.MethodPatch, fmt.Sprintf("/bookings/%d/status?new_status=completed", first.ID), nil, "")
	resp, data = doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/bookings/%d", first.ID),
		map[string]any{"notes": "too late"}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 editing completed booking, got %d: %s", resp.StatusCode, data)
	}
}

func TestBookingEditUnexpectedFailureIs500(t *testing.T) {
	app := setupTestApp(t)
	alice := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	_, provider := seedProvider(t, "bob@example.com", 400, true)

	booking := createBooking(t, app, alice.ID, provider.ID, "2026-09-10")

	// Repricing needs the provider row; losing it is not the caller's fault
	if err := db.DB.Exec("DROP TABLE providers").Error; err != nil {
		t.Fatalf("failed to drop providers table: %v", err)
	}

	resp, data := doJSON(t, app, http.MethodPut,
		fmt.Sprintf("/bookings/%d", booking.ID),
		map[string]any{"duration_hours": 3}, "")
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unexpected database failure, got %d: %s", resp.StatusCode, data)
	}
}

func TestRescheduleResponseDateConflict(t *testing.T) {
	app := setupTestApp(t)
	alice := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	carol := seedUser(t, "Carol", "carol@example.com", models.RoleCustomer)
	providerUser, provider := seedProvider(t, "bob@example.com", 250, true)

	booking := createBooking(t, app, alice.ID, provider.ID, "2026-09-10")
	doJSON(t, app, http.MethodPatch, fmt.Sprintf("/bookings/%d/status?new_status=confirmed", booking.ID), nil, "")

	resp, data := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/reschedule?suggested_date=2026-09-12&suggested_time=09:00", booking.ID),
		nil, tokenFor(t, &providerUser))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 requesting reschedule, got %d: %s", resp.StatusCode, data)
	}

	// While the booking sat parked, someone else took the suggested date
	createBooking(t, app, carol.ID, provider.ID, "2026-09-12")

	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/reschedule/response?accept=true", booking.ID),
		nil, tokenFor(t, &alice))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 accepting onto a taken date, got %d: %s", resp.StatusCode, data)
	}

	var parked models.Booking
	if err := db.DB.First(&parked, booking.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if parked.Status != models.StatusRescheduleRequested {
		t.Errorf("expected booking still parked after failed accept, got %s", parked.Status)
	}
	if parked.SuggestedDate != "2026-09-12" {
		t.Errorf("expected suggestion kept after failed accept, got %q", parked.SuggestedDate)
	}

	// Rejecting falls back to the original date, which the booking itself
	// held and may reclaim
	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/reschedule/response?accept=false", booking.ID),
		nil, tokenFor(t, &alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 rejecting reschedule, got %d: %s", resp.StatusCode, data)
	}
	var rejected models.Booking
	if err := db.DB.First(&rejected, booking.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if rejected.Status != models.StatusPending || rejected.BookingDate != "2026-09-10" {
		t.Errorf("expected pending on 2026-09-10 after reject, got %s on %s",
			rejected.Status, rejected.BookingDate)
	}
}

func TestRescheduleFlow(t *testing.T) {
	app := setupTestApp(t)
	customer := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	providerUser, provider := seedProvider(t, "bob@example.com", 250, true)

	booking := createBooking(t, app, customer.ID, provider.ID, "2026-09-10")
	doJSON(t, app, http.MethodPatch, fmt.Sprintf("/bookings/%d/status?new_status=confirmed", booking.ID), nil, "")

	// Only the booked provider may ask for a reschedule
	resp, data := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/reschedule?suggested_date=2026-09-12&suggested_time=09:00", booking.ID),
		nil, tokenFor(t, &customer))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for customer requesting reschedule, got %d: %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/reschedule?suggested_date=2026-09-12&suggested_time=09:00", booking.ID),
		nil, tokenFor(t, &providerUser))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 requesting reschedule, got %d: %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/bookings/%d/reschedule/response?accept=true", booking.ID),
		nil, tokenFor(t, &customer))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 accepting reschedule, got %d: %s", resp.StatusCode, data)
	}

	var updated models.Booking
	decode(t, data, &updated)
	if updated.Status != models.StatusConfirmed {
		t.Errorf("expected confirmed after accept, got %s", updated.Status)
	}
	if updated.BookingDate != "2026-09-12" || updated.BookingTime != "09:00" {
		t.Errorf("expected suggested slot adopted, got %s %s", updated.BookingDate, updated.BookingTime)
	}
	if updated.SuggestedDate != "" || updated.SuggestedTime != "" {
		t.Errorf("expected suggestion cleared, got %q %q", updated.SuggestedDate, updated.SuggestedTime)
	}
}
