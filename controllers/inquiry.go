package controllers

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/utils"
)

// CreateInquiry accepts a contact-form submission from anyone, no account needed
func CreateInquiry(c *fiber.Ctx) error {
	inquiry := new(models.Inquiry)
	if err := c.BodyParser(inquiry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := utils.Validate.Struct(inquiry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Missing or invalid fields",
			Error:   err.Error(),
		})
	}

	inquiry.ID = 0
	inquiry.Status = models.InquiryNew
	if err := db.DB.Create(inquiry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to submit inquiry",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(inquiry)
}

// GetAllInquiries lists contact-form submissions for the admin console,
// optionally filtered by status.
func GetAllInquiries(c *fiber.Ctx) error {
	query := db.DB.Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var inquiries []models.Inquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch inquiries",
			Error:   err.Error(),
		})
	}
	return c.JSON(inquiries)
}

// UpdateInquiryStatus marks an inquiry read or replied
func UpdateInquiryStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := models.InquiryStatus(c.Query("status"))

	switch status {
	case models.InquiryNew, models.InquiryRead, models.InquiryReplied:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "status must be one of new, read, replied",
		})
	}

	var inquiry models.Inquiry
	if err := db.DB.First(&inquiry, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Inquiry not found",
		})
	}

	inquiry.Status = status
	if err := db.DB.Save(&inquiry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update inquiry",
			Error:   err.Error(),
		})
	}

	return c.JSON(inquiry)
}
