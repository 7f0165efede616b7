package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
)

func SetupServiceRoutes(app *fiber.App) {
	services := app.Group("/services")

	services.Get("/", controllers.GetAllServices)
	services.Get("/stats", controllers.GetPublicStats)
	services.Get("/:id", controllers.GetService)
}
