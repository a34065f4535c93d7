// Package cors decides which browser origins may call the API with credentials.
package cors

import (
	"github.com/gofiber/fiber/v2"
)

const (
	AllowMethods = "GET,PUT,POST,DELETE,OPTIONS"
	AllowHeaders = "Origin, X-Requested-With, Content-Type, Accept, Authorization"

	rejectMessage = "Not allowed by CORS"
)

// DefaultOrigins are the frontends allowed to call the API.
var DefaultOrigins = []string{
	"https://dev.d2lmg68j4s3hb1.amplifyapp.com",
	"https://main.d2lmg68j4s3hb1.amplifyapp.com",
	"https://www.play2earn.ai",
	"https://play2earn.ai",
}

// Policy is an immutable origin allow-list.
type Policy struct {
	origins map[string]struct{}
}

func New(origins ...string) *Policy {
	p := &Policy{origins: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		p.origins[o] = struct{}{}
	}
	return p
}

// Allowed reports whether a request carrying the given Origin header may
// proceed. An empty origin means same-origin or a non-browser client.
func (p *Policy) Allowed(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// Handler is the single CORS stage of the middleware chain.
func (p *Policy) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if !p.Allowed(origin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": rejectMessage})
		}

		if origin != "" {
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
			c.Vary(fiber.HeaderOrigin)
		}
		c.Set(fiber.HeaderAccessControlAllowMethods, AllowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, AllowHeaders)

		if c.Method() == fiber.MethodOptions {
			c.Status(fiber.StatusOK)
			return nil
		}
		return c.Next()
	}
}
