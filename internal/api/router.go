package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints: health, PIN check, WebSocket feed. Terminals
		// connect to the feed before anyone has entered a PIN.
		r.Get("/health", s.handleHealth)
		r.Post("/staff/auth", s.handleStaffAuth)
		r.Get("/ws", s.handleWebSocket)

		// Everything else requires an admin PIN.
		r.Group(func(r chi.Router) {
			r.Use(s.adminGateMiddleware)

			r.Get("/system/stats", s.handleSystemStats)

			r.Route("/staff", func(r chi.Router) {
				r.Get("/", s.handleListStaff)
				r.Post("/", s.handleCreateStaff)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetStaff)
					r.Put("/", s.handleUpdateStaff)
					r.Delete("/", s.handleDeleteStaff)
				})
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Route("/categories", func(r chi.Router) {
					r.Get("/", s.handleListCategories)
					r.Post("/", s.handleCreateCategory)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", s.handleGetCategory)
						r.Put("/", s.handleUpdateCategory)
						r.Delete("/", s.handleDeleteCategory)
					})
				})

				r.Route("/items", func(r chi.Router) {
					r.Get("/", s.handleListItems)
					r.Post("/", s.handleCreateItem)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", s.handleGetItem)
						r.Put("/", s.handleUpdateItem)
						r.Delete("/", s.handleDeleteItem)
					})
				})

				r.Route("/modifiers", func(r chi.Router) {
					r.Get("/", s.handleListModifiers)
					r.Post("/", s.handleCreateModifier)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", s.handleGetModifier)
						r.Put("/", s.handleUpdateModifier)
						r.Delete("/", s.handleDeleteModifier)
					})
				})

				r.Route("/options", func(r chi.Router) {
					r.Get("/", s.handleListOptions)
					r.Post("/", s.handleCreateOption)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", s.handleGetOption)
						r.Put("/", s.handleUpdateOption)
						r.Delete("/", s.handleDeleteOption)
					})
				})

				r.Route("/discounts", func(r chi.Router) {
					r.Get("/", s.handleListDiscounts)
					r.Post("/", s.handleCreateDiscount)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", s.handleGetDiscount)
						r.Put("/", s.handleUpdateDiscount)
						r.Delete("/", s.handleDeleteDiscount)
					})
				})
			})
		})
	})

	return r
}
