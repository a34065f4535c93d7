package auth

import "github.com/gofiber/fiber/v2"

type Response struct {
	Message string      `json:"message"`
	User    interface{} `json:"user,omitempty"`
}

func (r Response) HttpResponse(ctx *fiber.Ctx, status int) error {
	return ctx.Status(status).JSON(r)
}
