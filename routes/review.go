package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
)

func SetupReviewRoutes(app *fiber.App) {
	reviews := app.Group("/reviews")

	reviews.Post("/", controllers.CreateReview)
	reviews.Get("/provider/:id", controllers.GetProviderReviews)
	reviews.Get("/customer/:id", controllers.GetCustomerReviews)
}
