package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"household-services-api/db"
	"household-services-api/models"
	"household-services-api/utils"
)

type DashboardStats struct {
	TotalUsers        int64   `json:"total_users"`
	TotalCustomers    int64   `json:"total_customers"`
	TotalProviders    int64   `json:"total_providers"`
	PendingProviders  int64   `json:"pending_providers"`
	TotalBookings     int64   `json:"total_bookings"`
	PendingBookings   int64   `json:"pending_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	OpenComplaints    int64   `json:"open_complaints"`
	NewInquiries      int64   `json:"new_inquiries"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalCommission   float64 `json:"total_commission"`
}

// GetDashboard aggregates the platform counters for the admin console. A
// failed count logs and reads as zero so one broken aggregate doesn't blank
// the whole dashboard.
func GetDashboard(c *fiber.Ctx) error {
	var stats DashboardStats

	count := func(dest *int64, query *gorm.DB) {
		if err := query.Count(dest).Error; err != nil {
			log.Printf("Dashboard count failed: %v", err)
			*dest = 0
		}
	}

	count(&stats.TotalUsers, db.DB.Model(&models.User{}))
	count(&stats.TotalCustomers, db.DB.Model(&models.User{}).Where("role = ?", models.RoleCustomer))
	count(&stats.TotalProviders, db.DB.Model(&models.Provider{}))
	count(&stats.PendingProviders, db.DB.Model(&models.Provider{}).
		Where("background_verified = ?", models.VerificationPending))
	count(&stats.TotalBookings, db.DB.Model(&models.Booking{}))
	count(&stats.PendingBookings, db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusPending))
	count(&stats.CompletedBookings, db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusCompleted))
	count(&stats.CancelledBookings, db.DB.Model(&models.Booking{}).Where("status = ?", models.StatusCancelled))
	count(&stats.OpenComplaints, db.DB.Model(&models.Complaint{}).
		Where("status IN ?", []models.ComplaintStatus{models.ComplaintPending, models.ComplaintInvestigating}))
	count(&stats.NewInquiries, db.DB.Model(&models.Inquiry{}).Where("status = ?", models.InquiryNew))

	if err := db.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		log.Printf("Dashboard revenue sum failed: %v", err)
		stats.TotalRevenue = 0
	}
	if err := db.DB.Model(&models.Booking{}).
		Where("status = ?", models.StatusCompleted).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&stats.TotalCommission).Error; err != nil {
		log.Printf("Dashboard commission sum failed: %v", err)
		stats.TotalCommission = 0
	}

	return c.JSON(stats)
}

// GetAllBookings lists every booking for the admin console, optionally
// filtered by status.
func GetAllBookings(c *fiber.Ctx) error {
	query := db.DB.Preload("Customer").Preload("Provider").Preload("Provider.User").
		Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch bookings",
			Error:   err.Error(),
		})
	}

	for i := range bookings {
		bookings[i].Customer.Password = ""
		bookings[i].Provider.User.Password = ""
	}
	return c.JSON(bookings)
}
