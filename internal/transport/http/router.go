package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/account-service/internal/service"
	"github.com/pribylovaa/account-service/internal/transport/http/handlers"
	"github.com/pribylovaa/account-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики и латентность по маршрутам
		middleware.AuthBearer(),         // вынимаем Bearer токен в контекст
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	// auth — публичные маршруты.
	r.Post("/auth/register", h.RegisterUser)
	r.Post("/auth/login", h.LoginUser)
	r.Post("/auth/refresh", h.RefreshToken)
	r.Post("/auth/decode", h.DecodeToken)
	r.Post("/auth/recover", h.RecoverPassword)
	r.Post("/auth/reset", h.ResetPassword)

	// users — только с валидным access-токеном.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(svc))

		pr.Get("/users/{id}", h.GetUser)
		pr.Patch("/users/{id}", h.UpdateUser)
		pr.Delete("/users/{id}", h.DeleteUser)
		pr.Post("/users/{id}/block", h.BlockUser)
		pr.Post("/users/{id}/unblock", h.UnblockUser)
		pr.Get("/users/{id}/operations", h.ListOperations)

		// roles
		pr.Get("/roles", h.ListRoles)
		pr.Post("/roles", h.CreateRole)
		pr.Patch("/roles/{id}", h.UpdateRole)
		pr.Delete("/roles/{id}", h.DeleteRole)
		pr.Post("/roles/{id}/users", h.AssignRole)
	})
}
