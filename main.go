package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"household-services-api/cron"
	"household-services-api/db"
	"household-services-api/redis"
	"household-services-api/routes"
)

func main() {
	app := fiber.New()

	db.Migrate()
	redis.InitRedis()
	cron.StartCronJobs()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Household Services API")
	})

	routes.SetupUserRoutes(app)
	routes.SetupProviderRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupComplaintRoutes(app)
	routes.SetupInquiryRoutes(app)
	routes.SetupAdminRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
