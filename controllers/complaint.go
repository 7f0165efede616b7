package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/utils"
)

type ComplaintCreateInput struct {
	BookingID   uint   `json:"booking_id" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// CreateComplaint files a complaint against one of the customer's own bookings
func CreateComplaint(c *fiber.Ctx) error {
	customerID := c.QueryInt("customer_id")
	if customerID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "customer_id query parameter is required",
		})
	}

	input := new(ComplaintCreateInput)
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

	// Ownership is part of the lookup: someone else's booking reads as missing
	var booking models.Booking
	if err := db.DB.Where("id = ? AND customer_id = ?", input.BookingID, customerID).
		First(&booking).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Booking not found",
		})
	}

	complaint := models.Complaint{
		BookingID:   booking.ID,
		CustomerID:  booking.CustomerID,
		Subject:     input.Subject,
		Description: input.Description,
		Status:      models.ComplaintPending,
	}
	if err := db.DB.Create(&complaint).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create complaint",
			Error:   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(complaint)
}

// GetAllComplaints lists every complaint for the admin console, optionally
// filtered by status.
func GetAllComplaints(c *fiber.Ctx) error {
	query := db.DB.Preload("Booking").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var complaints []models.Complaint
	if err := query.Find(&complaints).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch complaints",
			Error:   err.Error(),
		})
	}
	return c.JSON(complaints)
}

// GetCustomerComplaints lists a customer's complaints
func GetCustomerComplaints(c *fiber.Ctx) error {
	customerID := c.Params("id")

	var complaints []models.Complaint
	if err := db.DB.Preload("Booking").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&complaints).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch complaints",
			Error:   err.Error(),
		})
	}
	return c.JSON(complaints)
}

// InvestigateComplaint moves a pending complaint under investigation
func InvestigateComplaint(c *fiber.Ctx) error {
	return updateComplaintStatus(c, models.ComplaintInvestigating, false)
}

// ResolveComplaint closes a complaint with a resolution note
func ResolveComplaint(c *fiber.Ctx) error {
	return updateComplaintStatus(c, models.ComplaintResolved, false)
}

// WarnProvider closes a complaint by issuing the provider a warning
func WarnProvider(c *fiber.Ctx) error {
	return updateComplaintStatus(c, models.ComplaintWarned, false)
}

// RefundComplaint closes a complaint with a refund: the booking is cancelled
// and marked refunded, and the amount is credited back to the customer's
// wallet with a ledger entry.
func RefundComplaint(c *fiber.Ctx) error {
	return updateComplaintStatus(c, models.ComplaintRefunded, true)
}

type complaintActionInput struct {
	Resolution string `json:"resolution"`
	AdminNotes string `json:"admin_notes"`
}

func updateComplaintStatus(c *fiber.Ctx, status models.ComplaintStatus, refund bool) error {
	id := c.Params("id")

	input := new(complaintActionInput)
	if err := c.BodyParser(input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	var complaint models.Complaint
	if err := db.DB.First(&complaint, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Complaint not found",
		})
	}

	if complaint.Status == models.ComplaintResolved ||
		complaint.Status == models.ComplaintRefunded ||
		complaint.Status == models.ComplaintWarned {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: fmt.Sprintf("Complaint is already closed as %s", complaint.Status),
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		complaint.Status = status
		if input.Resolution != "" {
			complaint.Resolution = input.Resolution
		}
		if input.AdminNotes != "" {
			complaint.AdminNotes = input.AdminNotes
		}
		if err := tx.Save(&complaint).Error; err != nil {
			return err
		}

		if refund {
			return refundBooking(tx, &complaint)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating complaint %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update complaint",
			Error:   err.Error(),
		})
	}

	return c.JSON(complaint)
}

// refundBooking cancels the complained-about booking, flags it refunded and
// credits the amount back onto the customer's wallet.
func refundBooking(tx *gorm.DB, complaint *models.Complaint) error {
	var booking models.Booking
	if err := tx.First(&booking, complaint.BookingID).Error; err != nil {
		return err
	}

	booking.RefundStatus = "processed"
	booking.PaymentStatus = "refunded"
	booking.Status = models.StatusCancelled
	if err := tx.Save(&booking).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.User{}).
		Where("id = ?", booking.CustomerID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", booking.TotalAmount)).Error; err != nil {
		return err
	}

	txn := models.Transaction{
		UserID:      booking.CustomerID,
		Amount:      booking.TotalAmount,
		Type:        models.TransactionCredit,
		Description: fmt.Sprintf("Refund for booking #%d (%s)", booking.ID, booking.ServiceName),
		ReferenceID: uuid.New().String(),
	}
	return tx.Create(&txn).Error
}
