package controllers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/utils"
)

type ReviewCreateInput struct {
	BookingID uint    `json:"booking_id" validate:"required"`
	Rating    float64 `json:"rating" validate:"required,min=1,max=5"`
	Comment   string  `json:"comment"`
}

// CreateReview records a customer's rating for a completed booking and folds
// it into the provider's average. One review per booking.
func CreateReview(c *fiber.Ctx) error {
	customerID := c.QueryInt("customer_id")
	if customerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "customer_id query parameter is required",
		})
	}

	input := new(ReviewCreateInput)
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

	var booking models.Booking
	if err := db.DB.First(&booking, input.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	if booking.CustomerID != uint(customerID) {
		return c.Status(fiber.StatusForbidden).JSON(utils.ErrorResponse{
			Message: "You can only review your own bookings",
		})
	}

	if booking.Status != models.StatusCompleted {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Only completed bookings can be reviewed",
		})
	}

	var existing models.Review
	if db.DB.Where("booking_id = ?", booking.ID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This booking has already been reviewed",
		})
	}

	review := models.Review{
		BookingID:  booking.ID,
		ProviderID: booking.ProviderID,
		CustomerID: booking.CustomerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recalcProviderRating(tx, booking.ProviderID)
	})
	// A race past the existence check lands on the booking_id unique column
	if utils.IsUniqueViolation(err) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "This booking has already been reviewed",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create review",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetProviderReviews lists every review left for a provider, newest first
func GetProviderReviews(c *fiber.Ctx) error {
	providerID := c.Params("id")

	var reviews []models.Review
	if err := db.DB.Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}

	for i := range reviews {
		reviews[i].Customer.Password = ""
	}
	return c.JSON(reviews)
}

// GetCustomerReviews lists reviews a customer has written
func GetCustomerReviews(c *fiber.Ctx) error {
	customerID := c.Params("id")

	var reviews []models.Review
	if err := db.DB.Preload("Provider").Preload("Provider.User").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch reviews",
			Error:   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// recalcProviderRating recomputes a provider's average rating from all of
// their reviews, rounded to one decimal place.
func recalcProviderRating(tx *gorm.DB, providerID uint) error {
	var avg float64
	if err := tx.Model(&models.Review{}).
		Where("provider_id = ?", providerID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}

	rounded := math.Round(avg*10) / 10
	return tx.Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("rating", rounded).Error
}
