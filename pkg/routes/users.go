package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/store"
)

type Users struct {
	Auth  *auth.Auth
	Users store.Users
}

func (m *Users) Prefix() string { return "/api/users" }

func (m *Users) Register(r fiber.Router) {
	r.Use(m.Auth.Middleware)
	r.Get("/me", m.me)
	r.Put("/me", m.updateMe)
	r.Get("/:id", m.byID)
}

func (m *Users) me(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := m.Users.ByID(c.UserContext(), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(user)
}

type updateUserRequest struct {
	Name string `json:"name"`
}

func (m *Users) updateMe(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	user, err := m.Users.UpdateName(c.UserContext(), id, name)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(user)
}

func (m *Users) byID(c *fiber.Ctx) error {
	user, err := m.Users.ByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(user)
}
