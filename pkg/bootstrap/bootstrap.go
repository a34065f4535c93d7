// Package bootstrap wires configuration, persistence and routes into one
// fiber app. Every entry point builds the app exactly once per process.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/play2earn/backend/pkg/auth"
	"github.com/play2earn/backend/pkg/config"
	"github.com/play2earn/backend/pkg/cors"
	"github.com/play2earn/backend/pkg/logging"
	"github.com/play2earn/backend/pkg/practice"
	"github.com/play2earn/backend/pkg/routes"
	"github.com/play2earn/backend/pkg/server"
	"github.com/play2earn/backend/pkg/store"
)

type App struct {
	Fiber  *fiber.App
	Config *config.Config
	Logger *zap.Logger
	Mongo  *store.Mongo

	couchbase *auth.CouchbaseSessions
}

// FromEnv loads configuration and logging from the environment and builds the app.
func FromEnv(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if !cfg.EnvFileLoaded {
		logger.Debug("no .env file found, using process environment")
	}
	return Build(ctx, cfg, logger)
}

// Build opens the database and session store and assembles the routes.
// A database that cannot be reached is logged, not fatal.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	texts, err := practice.Bundled()
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger}
	app.Mongo = store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)

	var sessions auth.SessionStore
	if cfg.Couchbase.Enabled() {
		cb, err := auth.ConnectCouchbase(auth.CouchbaseConfig(cfg.Couchbase))
		if err != nil {
			logger.Error("couchbase session store unavailable, falling back to memory", zap.Error(err))
		} else {
			app.couchbase = cb
			sessions = cb
			logger.Info("Connected to Couchbase", zap.String("bucket", cfg.Couchbase.BucketName))
		}
	} else {
		logger.Warn("CB_CONN_STR not set, sessions are kept in memory")
	}

	a := auth.New(&auth.Config{
		JwtSecretKey:        cfg.JwtSecret,
		TokenTTL:            cfg.TokenTTL,
		Sessions:            sessions,
		EndpointPermissions: routes.AdminPermissions,
		CookieSecure:        cfg.CookieSecure,
		Roles:               routes.UserRoles(app.Mongo.Users()),
	})

	app.Fiber = server.New(server.Options{
		Logger:  logger,
		Origins: cors.New(cors.DefaultOrigins...),
	}, routes.Modules(routes.Deps{
		Auth:     a,
		Texts:    texts,
		Users:    app.Mongo.Users(),
		Tasks:    app.Mongo.Tasks(),
		TextTags: app.Mongo.TextTags(),
		Logger:   logger,
	})...)

	return app, nil
}

// Close releases the database and session store connections.
func (a *App) Close(ctx context.Context) {
	if err := a.Mongo.Disconnect(ctx); err != nil {
		a.Logger.Warn("mongo disconnect", zap.Error(err))
	}
	if a.couchbase != nil {
		if err := a.couchbase.Close(); err != nil {
			a.Logger.Warn("couchbase close", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}
