package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/routes"
	"household-services-api/utils"
)

// setupTestApp wires the full route surface against a fresh in-memory
// database. Each test gets its own database.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		// A fresh connection would see an empty in-memory database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.MigrateSchema(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	app := fiber.New()
	routes.SetupUserRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupComplaintRoutes(app)
	routes.SetupInquiryRoutes(app)
	routes.SetupAdminRoutes(app)
	return app
}

func seedUser(t *testing.T, name, email string, role models.Role) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedProvider(t *testing.T, email string, hourlyRate float64, verified bool) (models.User, models.Provider) {
	t.Helper()

	user := seedUser(t, "Provider "+email, email, models.RoleProvider)
	status := models.VerificationPending
	if verified {
		status = models.VerificationVerified
	}
	provider := models.Provider{
		UserID:             user.ID,
		ServiceType:        "cleaning",
		HourlyRate:         hourlyRate,
		Location:           "Springfield",
		Address:            "12 Main St",
		BackgroundVerified: status,
	}
	if err := db.DB.Create(&provider).Error; err != nil {
		t.Fatalf("failed to seed provider %s: %v", email, err)
	}
	return user, provider
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.CreateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}
	return token
}

// doJSON runs one request against the app and returns the response with its
// body already read.
func doJSON(t *testing.T, app *fiber.App, method, path string, payload any, token string) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	resp.Body.Close()
	return resp, data
}

func decode(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("failed to decode response %q: %v", data, err)
	}
}

func createBooking(t *testing.T, app *fiber.App, customerID uint, providerID uint, date string) models.Booking {
	t.Helper()

	payload := fiber.Map{
		"provider_id":    providerID,
		"service_name":   "Deep Cleaning",
		"booking_date":   date,
		"booking_time":   "10:00",
		"duration_hours": 2,
		"address":        "12 Main St",
	}
	resp, data := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/bookings?customer_id=%d", customerID), payload, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 creating booking, got %d: %s", resp.StatusCode, data)
	}

	var booking models.Booking
	decode(t, data, &booking)
	return booking
}
