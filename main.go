package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"servicehub/cron"
	"servicehub/db"
	"servicehub/redis"
	"servicehub/routes"
	"servicehub/ws"
)

func main() {
	app := fiber.New()
	db.Init()
	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	}
	redis.InitRedis()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ServiceHub API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupServiceRoutes(app)
	routes.SetupListingRoutes(app)
	routes.SetupRequestRoutes(app)
	routes.SetupQuoteRoutes(app)
	routes.SetupBookingRoutes(app)
	routes.SetupReviewRoutes(app)
	routes.SetupProfileRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupNotificationRoutes(app)
	routes.SetupAdminRoutes(app)

	app.Use("/ws", ws.Upgrade())
	app.Get("/ws", ws.Handler())

	app.Listen(":8000")
	fmt.Println("Server started on port 8000")
}
