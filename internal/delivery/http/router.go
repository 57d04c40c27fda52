package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
)

// NewApp builds the Fiber app with the middleware stack. CORS is wide open:
// the consumers are static dashboards served from arbitrary origins.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "hrfx-gateway",
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"*"},
	}))

	return app
}
