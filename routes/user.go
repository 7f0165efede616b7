package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
	"household-services-api/middleware"
	"household-services-api/models"
)

func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/users")

	users.Post("/register/customer", controllers.RegisterCustomer)
	users.Post("/register/provider", controllers.RegisterProvider)
	users.Post("/login", controllers.Login)
	users.Post("/refresh", controllers.RefreshToken)

	users.Get("/me", middleware.Protected(), controllers.GetMe)
	users.Get("/me/:id", controllers.GetUser)
	users.Get("/", middleware.Protected(), middleware.RequireRole(models.RoleAdmin), controllers.GetAllUsers)
	users.Put("/:id", middleware.Protected(), controllers.UpdateUser)
	users.Delete("/:id", middleware.Protected(), controllers.DeleteUser)
}
