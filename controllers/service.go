package controllers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/redis"
	"household-services-api/utils"
)

// GetAllServices lists the service catalog, optionally filtered by category
func GetAllServices(c *fiber.Ctx) error {
	query := db.DB.Order("name asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch services",
			Error:   err.Error(),
		})
	}
	return c.JSON(services)
}

// GetService returns one catalog entry
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")

	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
		})
	}
	return c.JSON(service)
}

const statsCacheKey = "public_stats"
const statsCacheTTL = 5 * time.Minute

type PublicStats struct {
	TotalProviders    int64 `json:"total_providers"`
	TotalCustomers    int64 `json:"total_customers"`
	CompletedBookings int64 `json:"completed_bookings"`
	ServiceTypes      int64 `json:"service_types"`
}

// GetPublicStats serves the landing-page counters. The counts are cached in
// Redis for a few minutes; any count that fails reads as zero rather than
// failing the whole response.
func GetPublicStats(c *fiber.Ctx) error {
	if redis.Client != nil {
		if cached, err := redis.Client.Get(redis.Ctx, statsCacheKey).Result(); err == nil {
			var stats PublicStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return c.JSON(stats)
			}
		}
	}

	var stats PublicStats
	if err := db.DB.Model(&models.Provider{}).
		Where("background_verified = ?", models.VerificationVerified).
		Count(&stats.TotalProviders).Error; err != nil {
		log.Printf("Failed to count providers: %v", err)
	}
	if err := db.DB.Model(&models.User{}).
		Where("role = ?", models.RoleCustomer).
		Count(&stats.TotalCustomers).Error; err != nil {
		log.Printf("Failed to count customers: %v", err)
	}
	if err := db.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Count(&stats.CompletedBookings).Error; err != nil {
		log.Printf("Failed to count completed bookings: %v", err)
	}
	if err := db.DB.Model(&models.Service{}).
		Count(&stats.ServiceTypes).Error; err != nil {
		log.Printf("Failed to count services: %v", err)
	}

	if redis.Client != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := redis.Client.Set(redis.Ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache stats: %v", err)
			}
		}
	}

	return c.JSON(stats)
}
