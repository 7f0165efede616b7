package routes

import (
	"github.com/gofiber/fiber/v2"

	"household-services-api/controllers"
	"household-services-api/middleware"
)

func SetupBookingRoutes(app *fiber.App) {
	bookings := app.Group("/bookings")

	bookings.Post("/", controllers.CreateBooking)
	bookings.Get("/customer/:id", controllers.GetCustomerBookings)
	bookings.Get("/provider/:id", controllers.GetProviderBookings)
	bookings.Get("/:id", controllers.GetBooking)

	bookings.Patch("/:id/status", controllers.UpdateBookingStatus)
	bookings.Put("/:id", controllers.UpdateBooking)
	bookings.Patch("/:id/reschedule", middleware.Protected(), controllers.RequestReschedule)
	bookings.Patch("/:id/reschedule/response", middleware.Protected(), controllers.RespondReschedule)
	bookings.Delete("/:id", controllers.CancelBooking)
}
