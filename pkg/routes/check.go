package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/play2earn/backend/pkg/auth"
)

// Check exposes the stateless session check.
type Check struct {
	Auth *auth.Auth
}

func (m *Check) Prefix() string { return "/api" }

func (m *Check) Register(r fiber.Router) {
	r.Get("/check", m.Auth.Check)
}
