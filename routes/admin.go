package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
	"household-services-api/middleware"
	"household-services-api/models"
)

func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	admin.Get("/dashboard", controllers.GetDashboard)
	admin.Get("/users", controllers.GetAllUsers)
	admin.Get("/bookings", controllers.GetAllBookings)
	admin.Delete("/users/:id", controllers.DeleteUser)
}
