package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/play2earn/backend/pkg/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.FromEnv(ctx)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		addr := ":" + app.Config.Port
		app.Logger.Info("Starting server", zap.String("addr", addr))
		if err := app.Fiber.Listen(addr); err != nil {
			app.Logger.Error("listen", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Fiber.ShutdownWithContext(shutdownCtx); err != nil {
		app.Logger.Warn("shutdown", zap.Error(err))
	}
	app.Close(shutdownCtx)
}
