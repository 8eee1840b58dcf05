// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. Public reads need no principal; mutations require a
// bearer token, and category creation additionally requires the admin
// role.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/auth"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// authRateLimit caps credential attempts per IP: 10 requests per minute.
const (
	authRateLimit  = 10
	authRateWindow = 1 * time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *auth.Tokens, authH *handlers.Auth, categories *handlers.Categories, posts *handlers.Posts, uploads *handlers.Uploads) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Authenticate(tokens))

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints. Register/login are rate-limited per IP so
		// credential stuffing stays expensive.
		r.Route("/auth", func(r chi.Router) {
			limiter := middleware.NewRateLimiter(authRateLimit, authRateWindow)
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)
				r.Post("/register", authH.Register)
				r.Post("/login", authH.Login)
			})
			r.With(middleware.RequireAuth).Get("/me", authH.Me)
		})

		// Categories: public read, admin-only create.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.With(middleware.RequireAuth, middleware.RequireAdmin).Post("/", categories.Create)
		})

		// Posts: public reads, authenticated mutations. The store layer
		// enforces the owner-or-admin gate on update and delete.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/search", posts.Search)
			r.Get("/{id}", posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
				r.Post("/{id}/comments", posts.AddComment)
			})
		})

		// Asset uploads for featured images.
		r.With(middleware.RequireAuth).Post("/uploads", uploads.Upload)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
