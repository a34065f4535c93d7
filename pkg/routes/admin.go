package routes

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/store"
)

const defaultUserListLimit = 100

// Admin is restricted to RoleAdmin through AdminPermissions.
type Admin struct {
	Auth  *auth.Auth
	Users store.Users
	Tasks store.Tasks
}

func (m *Admin) Prefix() string { return "/api/admin" }

func (m *Admin) Register(r fiber.Router) {
	r.Use(m.Auth.Middleware, m.Auth.Authorize)
	r.Get("/users", m.listUsers)
	r.Put("/users/:id/role", m.setRoles)
	r.Post("/tasks", m.createTask)
	r.Delete("/tasks/:id", m.deleteTask)
}

func (m *Admin) listUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultUserListLimit)
	if limit <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be positive")
	}
	users, err := m.Users.List(c.UserContext(), int64(limit))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(users)
}

type setRolesRequest struct {
	Roles []int `json:"roles"`
}

func (m *Admin) setRoles(c *fiber.Ctx) error {
	var req setRolesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Roles) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "roles are required")
	}
	for _, role := range req.Roles {
		if role != auth.RoleUser && role != auth.RoleAdmin {
			return fiber.NewError(fiber.StatusBadRequest, "unknown role")
		}
	}

	user, err := m.Users.SetRoles(c.UserContext(), c.Params("id"), req.Roles)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(user)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
	Reward      int    `json:"reward"`
}

func (m *Admin) createTask(c *fiber.Ctx) error {
	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title is required")
	}
	if req.Reward < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "reward cannot be negative")
	}

	task := &store.Task{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Level:       req.Level,
		Reward:      req.Reward,
	}
	if err := m.Tasks.Create(c.UserContext(), task); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (m *Admin) deleteTask(c *fiber.Ctx) error {
	if err := m.Tasks.Delete(c.UserContext(), c.Params("id")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
