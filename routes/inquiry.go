package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
	"household-services-api/middleware"
	"household-services-api/models"
)

func SetupInquiryRoutes(app *fiber.App) {
	inquiries := app.Group("/inquiries")

	inquiries.Post("/", controllers.CreateInquiry)
	inquiries.Get("/",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.GetAllInquiries)
	inquiries.Patch("/:id/status",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.UpdateInquiryStatus)
}
