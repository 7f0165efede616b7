package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
	"household-services-api/middleware"
	"household-services-api/models"
)

func SetupProviderRoutes(app *fiber.App) {
	providers := app.Group("/providers")

	providers.Get("/", controllers.SearchProviders)
	providers.Get("/service/:service_type", controllers.GetProvidersByService)
	providers.Get("/user/:user_id", controllers.GetProviderByUser)
	providers.Get("/:id", middleware.OptionalUser(), controllers.GetProvider)

	providers.Patch("/:id/verify",
		middleware.Protected(), middleware.RequireRole(models.RoleAdmin),
		controllers.VerifyProvider)
	providers.Patch("/:id/availability", middleware.Protected(), controllers.UpdateAvailability)
	providers.Post("/:id/picture", middleware.Protected(), controllers.UploadProviderPicture)
}
