package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/play2earn/backend/pkg/cors"
	"github.com/play2earn/backend/pkg/routes"
)

type Options struct {
	Logger  *zap.Logger
	Origins *cors.Policy
}

// New assembles the middleware chain and mounts every module:
// recover, request id, request log, CORS, then the routes.
func New(opts Options, modules ...routes.Module) *fiber.App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := opts.Origins
	if origins == nil {
		origins = cors.New(cors.DefaultOrigins...)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(logger))
	app.Use(origins.Handler())

	for _, m := range modules {
		m.Register(app.Group(m.Prefix()))
	}
	return app
}

// errorHandler renders every error as {"error": message}. Errors that are not
// *fiber.Error are logged and hidden behind a generic 500.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		logger.Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("requestID", c.GetRespHeader(fiber.HeaderXRequestID)),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}

func requestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		logger.Info("HTTP request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("requestID", c.GetRespHeader(fiber.HeaderXRequestID)),
		)
		return err
	}
}
