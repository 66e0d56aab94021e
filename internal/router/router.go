// Copyright (c) 2026 NextWave Digital Solutions LLC <dev@nextwavedigitalsolution.com>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// NextWave website. It organizes routes into public, API, auth, and admin
// groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nextwave/internal/handlers"
	"nextwave/internal/middleware"
	"nextwave/internal/session"
	"nextwave/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, auth *handlers.Auth, public *handlers.Public, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets.
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Public marketing pages.
	r.Get("/", public.Home)
	r.Get("/services", public.StaticPage("services", "Our Services", "services"))
	r.Get("/web-development", public.StaticPage("web_development", "Web Development", "services"))
	r.Get("/cybersecurity", public.StaticPage("cybersecurity", "Cybersecurity", "services"))
	r.Get("/automation-ai", public.StaticPage("automation_ai", "Automation & AI", "services"))
	r.Get("/local-it-support", public.StaticPage("it_support", "Local IT Support", "services"))
	r.Get("/portfolio", public.StaticPage("portfolio", "Portfolio", "portfolio"))
	r.Get("/about", public.StaticPage("about", "About Us", "about"))
	r.Get("/contact", public.StaticPage("contact", "Contact Us", "contact"))

	// Blog.
	r.Get("/blog", public.Blog)
	r.Get("/blog/{slug}", public.BlogPost)

	// JSON API — rate limited per client IP.
	apiLimiter := middleware.NewRateLimiter(20, time.Minute)
	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)
		r.Post("/subscribe-newsletter", api.SubscribeNewsletter)
		r.Post("/contact", api.Contact)
	})

	// Login and password reset — tighter rate limit against brute force.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Route("/login", func(r chi.Router) {
		r.Use(loginLimiter.Middleware)
		r.Use(middleware.CSRF)

		r.Get("/", auth.LoginPage)
		r.Post("/", auth.LoginSubmit)
		r.Get("/2fa", auth.TwoFAVerifyPage)
		r.Post("/2fa", auth.TwoFAVerifySubmit)
		r.Post("/reset", auth.ResetRequest)
		r.Get("/reset/confirm", auth.ResetForm)
		r.Post("/reset/confirm", auth.ResetConfirm)
	})

	// Admin area — session plus CSRF protection.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.CSRF)

		r.Get("/admin", admin.Dashboard)
		r.Get("/admin/2fa/setup", auth.TwoFASetupPage)
		r.Post("/admin/2fa/setup", auth.TwoFASetupSubmit)
		r.Post("/admin/logout", auth.Logout)

		r.Route("/blog-admin", func(r chi.Router) {
			r.Get("/", admin.PostsList)
			r.Get("/new", admin.NewPostForm)
			r.Post("/", admin.CreatePost)
			r.Get("/{id}/edit", admin.EditPostForm)
			r.Post("/{id}", admin.UpdatePost)
			r.Delete("/{id}", admin.DeletePost)
		})
	})

	// Branded 404 for everything else.
	r.NotFound(public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
