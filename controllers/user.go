package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"household-services-api/db"
	"household-services-api/middleware"
	"household-services-api/models"
	"household-services-api/utils"
)

// GetUser returns a single user by ID
func GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// GetAllUsers returns every user account. Admin only.
func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := db.DB.Preload("ProviderProfile").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch users",
			Error:   err.Error(),
		})
	}

	for i := range users {
		users[i].Password = ""
	}
	return c.JSON(users)
}

type UserUpdateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateUser edits the caller's own profile; admins may edit anyone.
func UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")

	callerID, _ := middleware.CallerID(c)
	callerRole, _ := middleware.CallerRole(c)

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if user.ID != callerID && callerRole != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this account",
		})
	}

	input := new(UserUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Email != "" && input.Email != user.Email {
		var existing models.User
		if db.DB.Where("email = ? AND id <> ?", input.Email, user.ID).First(&existing).RowsAffected > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already in use",
			})
		}
		user.Email = input.Email
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update user",
			Error:   err.Error(),
		})
	}

	user.Password = ""
	return c.JSON(user)
}

// DeleteUser removes an account and everything hanging off it. Deletion order
// is dependents first: reviews and complaints tied to bookings, then bookings,
// then the provider profile, then the user. Runs in one transaction so a
// failure midway leaves nothing half-deleted.
func DeleteUser(c *fiber.Ctx) error {
	id := c.Params("id")

	callerID, _ := middleware.CallerID(c)
	callerRole, _ := middleware.CallerRole(c)

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "User not found",
		})
	}

	if user.ID != callerID && callerRole != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this account",
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// Provider side: bookings against this provider and their dependents
		var provider models.Provider
		if tx.Where("user_id = ?", user.ID).First(&provider).RowsAffected > 0 {
			var bookingIDs []uint
			if err := tx.Model(&models.Booking{}).
				Where("provider_id = ?", provider.ID).
				Pluck("id", &bookingIDs).Error; err != nil {
				return err
			}

			if len(bookingIDs) > 0 {
				if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Review{}).Error; err != nil {
					return err
				}
				if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Complaint{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", bookingIDs).Delete(&models.Booking{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("provider_id = ?", provider.ID).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&provider).Error; err != nil {
				return err
			}
		}

		// Customer side: the user's own bookings and their dependents
		var customerBookingIDs []uint
		if err := tx.Model(&models.Booking{}).
			Where("customer_id = ?", user.ID).
			Pluck("id", &customerBookingIDs).Error; err != nil {
			return err
		}
		if len(customerBookingIDs) > 0 {
			if err := tx.Where("booking_id IN ?", customerBookingIDs).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Where("booking_id IN ?", customerBookingIDs).Delete(&models.Complaint{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("customer_id = ?", user.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", user.ID).Delete(&models.Complaint{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", user.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		log.Printf("Error deleting user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete account",
			Error:   err.Error(),
		})
	}

	return c.JSON(utils.MessageResponse{Message: "Account deleted successfully"})
}
