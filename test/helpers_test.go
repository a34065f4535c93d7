package test

import (
	"github.com/gofiber/fiber/v2"

	"github.com/play2earn/backend/pkg/auth"
)

func newProtectedApp(a *auth.Auth) *fiber.App {
	app := fiber.New()
	app.Use(a.Middleware)
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}
