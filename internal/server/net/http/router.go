// Package http собирает маршрутизатор сервера контактов.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-contacts-api/swagger/docs"
)

// RouterDeps — зависимости маршрутизатора.
type RouterDeps struct {
	Handler  *api.Handler
	Verifier *middleware.JWTVerifier
	Log      *logger.HTTPLogger

	// Limiter может быть nil — тогда лимиты выключены.
	Limiter *middleware.RateLimiter
}

// NewRouter собирает все маршруты приложения.
//
// Публичные: /api/auth/*, /swagger/*.
// Остальные требуют Bearer access-токен; GET-эндпоинты контактов идут
// через read-лимитер, мутирующие — через write-лимитер.
func NewRouter(d RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger(d.Log))

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Handler.Register)
			r.Post("/login", d.Handler.Login)
			r.Post("/refresh", d.Handler.Refresh)
			r.Get("/confirm/{token}", d.Handler.ConfirmEmail)
		})

		r.Group(func(r chi.Router) {
			r.Use(d.Verifier.Middleware)

			r.Route("/contacts", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(readLimit(d.Limiter))
					r.Get("/", d.Handler.ListContacts)
					r.Get("/upcoming-birthdays", d.Handler.UpcomingBirthdays)
					// поиск фильтрует только по query-параметрам,
					// сегмент {id} обработчиком не используется
					r.Get("/{id}", d.Handler.FindContact)
				})

				r.Group(func(r chi.Router) {
					r.Use(writeLimit(d.Limiter))
					r.Post("/", d.Handler.CreateContact)
					r.Put("/{id}", d.Handler.UpdateContact)
					r.Delete("/{id}", d.Handler.DeleteContact)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/me/", d.Handler.Me)
				r.Patch("/avatar", d.Handler.UpdateAvatar)
			})
		})
	})

	return r
}

func readLimit(l *middleware.RateLimiter) func(http.Handler) http.Handler {
	if l == nil {
		return passthrough
	}
	return l.Read
}

func writeLimit(l *middleware.RateLimiter) func(http.Handler) http.Handler {
	if l == nil {
		return passthrough
	}
	return l.Write
}

func passthrough(next http.Handler) http.Handler { return next }
