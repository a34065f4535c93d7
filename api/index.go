package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/play2earn/backend/pkg/bootstrap"
)

var (
	initOnce sync.Once
	initErr  error
	serve    http.HandlerFunc
)

func ensureApp() error {
	initOnce.Do(func() {
		app, err := bootstrap.FromEnv(context.Background())
		if err != nil {
			initErr = err
			return
		}
		serve = adaptor.FiberApp(app.Fiber)
	})
	return initErr
}

// Handler is the Vercel entrypoint for every route of the API.
func Handler(w http.ResponseWriter, r *http.Request) {
	if err := ensureApp(); err != nil {
		log.Printf("initialization failed: %v", err)
		http.Error(w, "Server initialization error", http.StatusInternalServerError)
		return
	}
	serve(w, r)
}
