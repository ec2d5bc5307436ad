package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avelldro/taskward/internal/api"
	apiMiddleware "github.com/avelldro/taskward/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Handlers
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	dashboardHandler := api.NewDashboardHandler(app.taskService)
	templateHandler := api.NewTemplateHandler(app.templateService)
	ruleHandler := api.NewRuleHandler(app.ruleService)
	watcherHandler := api.NewWatcherHandler(app.watcherService)
	notificationHandler := api.NewNotificationHandler(app.notificationService)
	taskHandler := api.NewTaskHandler(app.taskService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/dashboard", dashboardHandler.Get)

			r.Get("/templates", templateHandler.List)
			r.Post("/templates", templateHandler.Create)
			r.Post("/templates/{id}/generate", templateHandler.Generate)
			r.Get("/templates/{id}/history", templateHandler.History)

			r.Get("/rules", ruleHandler.List)
			r.Post("/rules", ruleHandler.Create)

			r.Post("/watchers", watcherHandler.Add)
			r.Delete("/watchers/{id}", watcherHandler.Remove)

			r.Get("/notifications", notificationHandler.List)
			r.Post("/notifications/{id}/read", notificationHandler.MarkRead)
			r.Post("/notifications/read-all", notificationHandler.MarkAllRead)

			r.Post("/tasks/{id}/complete", taskHandler.Complete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
