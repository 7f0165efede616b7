package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"household-services-api/db"
	"household-services-api/models"
)

func TestSearchProvidersFilters(t *testing.T) {
	app := setupTestApp(t)
	customer := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)

	_, cheap := seedProvider(t, "cheap@example.com", 200, true)
	_, pricey := seedProvider(t, "pricey@example.com", 800, true)
	seedProvider(t, "hidden@example.com", 100, false) // unverified

	resp, data := doJSON(t, app, http.MethodGet, "/providers", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 searching, got %d: %s", resp.StatusCode, data)
	}
	var results []models.Provider
	decode(t, data, &results)
	if len(results) != 2 {
		t.Fatalf("expected 2 verified providers, got %d", len(results))
	}

	// Price ceiling
	resp, data = doJSON(t, app, http.MethodGet, "/providers?max_price=500", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	decode(t, data, &results)
	if len(results) != 1 || results[0].ID != cheap.ID {
		t.Errorf("expected only the cheap provider under 500, got %d results", len(results))
	}

	// Price sort
	resp, data = doJSON(t, app, http.MethodGet, "/providers?sort_by=price_high", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	decode(t, data, &results)
	if len(results) != 2 || results[0].ID != pricey.ID {
		t.Errorf("expected pricey provider first under price_high sort")
	}

	// A provider already booked on the requested date drops out
	createBooking(t, app, customer.ID, cheap.ID, "2026-09-10")
	resp, data = doJSON(t, app, http.MethodGet, "/providers?date=2026-09-10", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, data)
	}
	decode(t, data, &results)
	if len(results) != 1 || results[0].ID != pricey.ID {
		t.Errorf("expected booked provider excluded for that date, got %d results", len(results))
	}

	// Passwords never leak through the embedded user
	for _, p := range results {
		if p.User.Password != "" {
			t.Error("expected password stripped from search results")
		}
	}
}

func TestGetProviderVerificationGate(t *testing.T) {
	app := setupTestApp(t)
	admin := seedUser(t, "Root", "admin@example.com", models.RoleAdmin)
	_, hidden := seedProvider(t, "hidden@example.com", 100, false)

	// Anonymous callers see unverified profiles as missing
	resp, data := doJSON(t, app, http.MethodGet, fmt.Sprintf("/providers/%d", hidden.ID), nil, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unverified provider, got %d: %s", resp.StatusCode, data)
	}

	// Admins reviewing an application can see it
	resp, data = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/providers/%d?admin_review=true", hidden.ID), nil, tokenFor(t, &admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin review, got %d: %s", resp.StatusCode, data)
	}

	// Verification opens the profile to everyone
	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/providers/%d/verify", hidden.ID), nil, tokenFor(t, &admin))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 verifying provider, got %d: %s", resp.StatusCode, data)
	}
	resp, data = doJSON(t, app, http.MethodGet, fmt.Sprintf("/providers/%d", hidden.ID), nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after verification, got %d: %s", resp.StatusCode, data)
	}
}

func TestVerifyProviderAdminOnly(t *testing.T) {
	app := setupTestApp(t)
	customer := seedUser(t, "Alice", "alice@example.com", models.RoleCustomer)
	_, provider := seedProvider(t, "bob@example.com", 300, false)

	resp, data := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/providers/%d/verify", provider.ID), nil, tokenFor(t, &customer))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin verify, got %d: %s", resp.StatusCode, data)
	}
}

func TestUpdateAvailability(t *testing.T) {
	app := setupTestApp(t)
	providerUser, provider := seedProvider(t, "bob@example.com", 300, true)
	stranger := seedUser(t, "Mallory", "mallory@example.com", models.RoleProvider)

	resp, data := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/providers/%d/availability", provider.ID),
		map[string]any{"availability_status": "busy"}, tokenFor(t, &stranger))
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for another provider, got %d: %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/providers/%d/availability", provider.ID),
		map[string]any{"availability_status": "parked"}, tokenFor(t, &providerUser))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bogus status, got %d: %s", resp.StatusCode, data)
	}

	resp, data = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/providers/%d/availability", provider.ID),
		map[string]any{"availability_status": "busy"}, tokenFor(t, &providerUser))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 setting own availability, got %d: %s", resp.StatusCode, data)
	}

	var reloaded models.Provider
	if err := db.DB.First(&reloaded, provider.ID).Error; err != nil {
		t.Fatalf("failed to reload provider: %v", err)
	}
	if reloaded.AvailabilityStatus != models.AvailabilityBusy {
		t.Errorf("expected busy, got %s", reloaded.AvailabilityStatus)
	}
}
