package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
	"household-services-api/middleware"
	"household-services-api/models"
)

func SetupComplaintRoutes(app *fiber.App) {
	complaints := app.Group("/complaints")

	complaints.Post("/", controllers.CreateComplaint)
	complaints.Get("/customer/:id", controllers.GetCustomerComplaints)

	complaints.Get("/",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.GetAllComplaints)
	complaints.Patch("/:id/investigate",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.InvestigateComplaint)
	complaints.Patch("/:id/resolve",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.ResolveComplaint)
	complaints.Patch("/:id/refund",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.RefundComplaint)
	complaints.Patch("/:id/warn",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.WarnProvider)
}
