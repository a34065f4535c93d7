package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/store"
)

type Tasks struct {
	Auth  *auth.Auth
	Tasks store.Tasks
}

func (m *Tasks) Prefix() string { return "/api/tasks" }

func (m *Tasks) Register(r fiber.Router) {
	r.Use(m.Auth.Middleware)
	r.Get("/", m.list)
	r.Get("/:id", m.byID)
}

func (m *Tasks) list(c *fiber.Ctx) error {
	tasks, err := m.Tasks.List(c.UserContext())
	if err != nil {
		return storeError(err)
	}
	return c.JSON(tasks)
}

func (m *Tasks) byID(c *fiber.Ctx) error {
	task, err := m.Tasks.ByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(task)
}

// FollowTask lets a user keep a list of tasks they are working on.
type FollowTask struct {
	Auth  *auth.Auth
	Tasks store.Tasks
}

func (m *FollowTask) Prefix() string { return "/api/follow-task" }

func (m *FollowTask) Register(r fiber.Router) {
	r.Use(m.Auth.Middleware)
	r.Get("/", m.list)
	r.Post("/:taskId", m.follow)
	r.Delete("/:taskId", m.unfollow)
}

func (m *FollowTask) list(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	tasks, err := m.Tasks.Followed(c.UserContext(), id)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(tasks)
}

func (m *FollowTask) follow(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := m.Tasks.Follow(c.UserContext(), id, c.Params("taskId")); err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Task followed"})
}

func (m *FollowTask) unfollow(c *fiber.Ctx) error {
	id, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := m.Tasks.Unfollow(c.UserContext(), id, c.Params("taskId")); err != nil {
		return storeError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
