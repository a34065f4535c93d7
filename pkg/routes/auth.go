package routes

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/store"
)

const minPasswordLength = 8

// Auth registers users and issues the session cookie.
type Auth struct {
	Auth   *auth.Auth
	Users  store.Users
	Logger *zap.Logger
}

func (m *Auth) Prefix() string { return "/api/auth" }

func (m *Auth) Register(r fiber.Router) {
	r.Post("/register", m.register)
	r.Post("/login", m.login)
	r.Post("/logout", m.logout)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Auth) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil || addr.Name != "" {
		return fiber.NewError(fiber.StatusBadRequest, "a valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &store.User{
		Name:         req.Name,
		Email:        addr.Address,
		PasswordHash: string(hash),
		Roles:        []int{auth.RoleUser},
	}
	if err := m.Users.Create(c.UserContext(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "email already registered")
		}
		return storeError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Auth) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	user, err := m.Users.ByEmail(c.UserContext(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return storeError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := m.Auth.CreateAccessToken(c.UserContext(), auth.Identity{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Roles:  user.Roles,
	}, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}
	m.Auth.SetTokenCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

func (m *Auth) logout(c *fiber.Ctx) error {
	if token := auth.RequestToken(c); token != "" {
		if err := m.Auth.RevokeAccessToken(c.UserContext(), token); err != nil && !errors.Is(err, auth.ErrInvalidToken) {
			m.Logger.Warn("could not revoke session", zap.Error(err))
		}
	}
	m.Auth.ClearTokenCookie(c)
	return c.JSON(fiber.Map{"message": "Logged out"})
}
