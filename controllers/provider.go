package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"household-services-api/db"
	"household-services-api/middleware"
	"household-services-api/models"
	"household-services-api/utils"
)

// SearchProviders returns verified providers matching the query filters.
// Only profiles with background_verified = verified are listed.
func SearchProviders(c *fiber.Ctx) error {
	query := db.DB.Model(&models.Provider{}).
		Preload("User").
		Where("background_verified = ?", models.VerificationVerified)

	if serviceType := c.Query("service_type"); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}

	if location := c.Query("location"); location != "" {
		pattern := fmt.Sprintf("%%%s%%", strings.ToLower(location))
		query = query.Where("LOWER(location) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern)
	}

	if minRating := c.QueryFloat("min_rating"); minRating > 0 {
		query = query.Where("rating >= ?", minRating)
	}
	if minPrice := c.QueryFloat("min_price"); minPrice > 0 {
		query = query.Where("hourly_rate >= ?", minPrice)
	}
	if maxPrice := c.QueryFloat("max_price"); maxPrice > 0 {
		query = query.Where("hourly_rate <= ?", maxPrice)
	}
	if minExperience := c.QueryInt("min_experience"); minExperience > 0 {
		query = query.Where("experience_years >= ?", minExperience)
	}

	if availability := c.Query("availability_status", string(models.AvailabilityAvailable)); availability != "" {
		query = query.Where("availability_status = ?", availability)
	}

	// Exclude providers that already hold an active booking on the requested date
	if date := c.Query("date"); date != "" {
		booked := db.DB.Model(&models.Booking{}).
			Select("provider_id").
			Where("booking_date = ? AND status IN ?", date,
				[]models.BookingStatus{models.StatusPending, models.StatusConfirmed})
		query = query.Where("id NOT IN (?)", booked)
	}

	switch c.Query("sort_by") {
	case "price_low":
		query = query.Order("hourly_rate asc")
	case "price_high":
		query = query.Order("hourly_rate desc")
	case "experience":
		query = query.Order("experience_years desc")
	default:
		query = query.Order("rating desc")
	}

	var providers []models.Provider
	if err := query.Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	for i := range providers {
		providers[i].User.Password = ""
	}

	return c.JSON(providers)
}

// GetProvider returns one provider. Unverified profiles read as 404 unless an
// authenticated admin asks for an explicit review bypass.
func GetProvider(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.Provider
	if err := db.DB.Preload("User").First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	if provider.BackgroundVerified != models.VerificationVerified {
		role, _ := middleware.CallerRole(c)
		allowBypass := c.QueryBool("admin_review") && role == models.RoleAdmin
		if !allowBypass {
			return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
				Message: "Provider not found or not yet verified",
			})
		}
	}

	provider.User.Password = ""
	return c.JSON(provider)
}

// GetProvidersByService lists available, verified providers for one service type
func GetProvidersByService(c *fiber.Ctx) error {
	serviceType := c.Params("service_type")

	var providers []models.Provider
	if err := db.DB.Preload("User").
		Where("service_type = ? AND availability_status = ? AND background_verified = ?",
			serviceType, models.AvailabilityAvailable, models.VerificationVerified).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch providers",
			Error:   err.Error(),
		})
	}

	for i := range providers {
		providers[i].User.Password = ""
	}
	return c.JSON(providers)
}

// GetProviderByUser resolves a provider profile from its backing user account.
// The provider dashboard uses this after login.
func GetProviderByUser(c *fiber.Ctx) error {
	userID := c.Params("user_id")

	var provider models.Provider
	if err := db.DB.Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider profile not found",
		})
	}

	return c.JSON(provider)
}

// VerifyProvider marks a provider's background check as passed. Admin only.
func VerifyProvider(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.Provider
	if err := db.DB.First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	provider.BackgroundVerified = models.VerificationVerified
	if err := db.DB.Save(&provider).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to verify provider",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.MessageResponse{Message: "Provider verified successfully"})
}

// UpdateAvailability changes a provider's availability status. The provider
// can set their own; admins can force any.
func UpdateAvailability(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.Provider
	if err := db.DB.First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	callerID, _ := middleware.CallerID(c)
	callerRole, _ := middleware.CallerRole(c)
	if provider.UserID != callerID && callerRole != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this provider",
		})
	}

	type AvailabilityInput struct {
		AvailabilityStatus models.AvailabilityStatus `json:"availability_status"`
	}
	input := new(AvailabilityInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	switch input.AvailabilityStatus {
	case models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityOffline:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "availability_status must be one of available, busy, offline",
		})
	}

	provider.AvailabilityStatus = input.AvailabilityStatus
	if err := db.DB.Save(&provider).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update availability",
			Error:   err.Error(),
		})
	}

	return c.JSON(provider)
}

// UploadProviderPicture stores a profile picture on Cloudinary and saves the URL
func UploadProviderPicture(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.Provider
	if err := db.DB.First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Provider not found",
		})
	}

	callerID, _ := middleware.CallerID(c)
	if provider.UserID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this provider",
		})
	}

	file, err := c.FormFile("profile_picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to get profile picture",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open profile picture",
		})
	}
	defer f.Close()

	publicID := fmt.Sprintf("provider_%d_%d", provider.ID, time.Now().Unix())
	secureURL, err := utils.UploadToCloudinary(f, publicID, "provider_pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload profile picture",
		})
	}

	provider.ProfilePicture = secureURL
	if err := db.DB.Save(&provider).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save profile picture",
			Error:   err.Error(),
		})
	}

	return c.JSON(provider)
}
