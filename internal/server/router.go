package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/handler"
	"github.com/BuzzLyutic/tenant-task-api/internal/observability"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/service"
	"github.com/BuzzLyutic/tenant-task-api/internal/token"
	"github.com/BuzzLyutic/tenant-task-api/internal/validation"
	"github.com/BuzzLyutic/tenant-task-api/pkg/respond"
)

const welcome = "Welcome to the Task Manager API"

// Deps - все, что роутеру нужно снаружи.
type Deps struct {
	Users      repo.UserRepository
	Tasks      repo.TaskRepository
	Tokens     *token.Service
	BcryptCost int
	Logger     *zap.Logger
}

func NewRouter(d Deps) (http.Handler, error) {
	v := validation.New()

	authService, err := service.NewAuthService(d.Users, d.Tokens, v, d.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init auth service: %w", err)
	}
	taskService := service.NewTaskService(d.Tasks, v)

	authHandler := handler.NewAuthHandler(authService, d.Logger)
	taskHandler := handler.NewTaskHandler(taskService, d.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(observability.MetricsMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(welcome))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(handler.RequireAuth(authService, d.Logger))
		r.Post("/", taskHandler.Create)
		r.Get("/", taskHandler.List)
		r.Get("/{taskId}", taskHandler.Get)
		r.Put("/{taskId}", taskHandler.Update)
		r.Delete("/{taskId}", taskHandler.Delete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r, nil
}
