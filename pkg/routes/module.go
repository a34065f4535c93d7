// Package routes holds every handler group of the API. Inline endpoints and
// resource modules implement the same Module contract and are mounted the
// same way by the server.
package routes

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/permission"
	"github.com/play2earn/backend/pkg/practice"
	"github.com/play2earn/backend/pkg/store"
)

// Module is a group of routes mounted under Prefix.
type Module interface {
	Prefix() string
	Register(r fiber.Router)
}

// AdminPermissions is the endpoint permission table enforced on /api/admin.
var AdminPermissions = permission.Table{
	"/api/admin/*": auth.RoleAdmin,
}

// UserRoles reads a user's current roles from users, for auth.Config.Roles.
func UserRoles(users store.Users) auth.RoleLookup {
	return func(ctx context.Context, userID string) ([]int, error) {
		u, err := users.ByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return u.Roles, nil
	}
}

// Deps are the shared, read-only collaborators handed to every module.
type Deps struct {
	Auth     *auth.Auth
	Texts    *practice.Table
	Users    store.Users
	Tasks    store.Tasks
	TextTags store.TextTags
	Logger   *zap.Logger
}

// Modules returns every module of the API in mount order.
func Modules(d Deps) []Module {
	return []Module{
		&Practice{Texts: d.Texts},
		&Check{Auth: d.Auth},
		&Auth{Auth: d.Auth, Users: d.Users, Logger: d.Logger},
		&Tasks{Auth: d.Auth, Tasks: d.Tasks},
		&Admin{Auth: d.Auth, Users: d.Users, Tasks: d.Tasks},
		&Users{Auth: d.Auth, Users: d.Users},
		&FollowTask{Auth: d.Auth, Tasks: d.Tasks},
		&TextTag{Auth: d.Auth, TextTags: d.TextTags},
		&WordCount{},
	}
}

// storeError maps repository errors onto HTTP errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate):
		return fiber.NewError(fiber.StatusConflict, "already exists")
	case errors.Is(err, store.ErrUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	return err
}

func currentUserID(c *fiber.Ctx) (string, error) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok || claims.UserID == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token, authentication failed")
	}
	return claims.UserID, nil
}
