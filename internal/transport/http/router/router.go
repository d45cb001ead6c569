package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/balekai/taskboard/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
}

type BoardHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	CreateList(w http.ResponseWriter, r *http.Request)
	Lists(w http.ResponseWriter, r *http.Request)
	UpdateList(w http.ResponseWriter, r *http.Request)
	DeleteList(w http.ResponseWriter, r *http.Request)

	CreateCard(w http.ResponseWriter, r *http.Request)
	Cards(w http.ResponseWriter, r *http.Request)
	UpdateCard(w http.ResponseWriter, r *http.Request)
	AssignCard(w http.ResponseWriter, r *http.Request)
	DeleteCard(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler
	Boards BoardHandler

	AuthMW func(http.Handler) http.Handler
}

// New wires all routes. Everything under /api/v1 sits behind the auth gate;
// /auth/v1, health and metrics are public.
func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Boards == nil {
		return nil, fmt.Errorf("nil Boards handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth/v1", func(r chi.Router) {
		// Credential endpoints get a stricter rate limit per client IP.
		limited := httprate.LimitByIP(10, time.Minute)

		r.With(limited).Post("/register", deps.Auth.Register)
		r.With(limited).Post("/login", deps.Auth.Login)
		r.Post("/refresh", deps.Auth.Refresh)
		r.Post("/logout", deps.Auth.Logout)
		r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
		r.With(deps.AuthMW).Put("/me", deps.Auth.UpdateMe)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(deps.AuthMW)

		r.Route("/boards", func(r chi.Router) {
			r.Post("/", deps.Boards.Create)
			r.Get("/", deps.Boards.List)
			r.Get("/{boardID}", deps.Boards.Get)
			r.Put("/{boardID}", deps.Boards.Update)
			r.Delete("/{boardID}", deps.Boards.Delete)

			r.Post("/{boardID}/lists", deps.Boards.CreateList)
			r.Get("/{boardID}/lists", deps.Boards.Lists)
		})

		r.Route("/lists", func(r chi.Router) {
			r.Put("/{listID}", deps.Boards.UpdateList)
			r.Delete("/{listID}", deps.Boards.DeleteList)

			r.Post("/{listID}/cards", deps.Boards.CreateCard)
			r.Get("/{listID}/cards", deps.Boards.Cards)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Put("/{cardID}", deps.Boards.UpdateCard)
			r.Put("/{cardID}/assignee", deps.Boards.AssignCard)
			r.Delete("/{cardID}", deps.Boards.DeleteCard)
		})
	})

	return r, nil
}
