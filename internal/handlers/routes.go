package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salon-booking-api/internal/middleware"
)

// Routes wires the full HTTP surface. Register/login are rate limited per
// IP; everything mutating sits behind the auth gate, supervisory routes
// behind the admin check on top.
func Routes(h *Handler, secret string, log *slog.Logger, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.CORS(corsOrigins))

	authLimiter := middleware.NewRateLimiter(5, 10)

	// Public
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(authLimiter))
		r.Post("/users/register", h.Users.Register)
		r.Post("/users/login", h.Users.Login)
	})
	r.Get("/services", h.Services.List)
	r.Get("/reviews/{service_id}", h.Reviews.ListByService)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(secret))

		r.Get("/users", h.Users.List)
		r.Get("/users/me", h.Users.Me)
		r.Put("/users/update", h.Users.Update)

		r.Post("/appointments", h.Appointments.Create)
		r.Get("/appointments/me", h.Appointments.ListMine)

		r.Post("/reviews", h.Reviews.Add)
		r.Put("/reviews/{id}", h.Reviews.Update)
		r.Delete("/reviews/{id}", h.Reviews.Delete)

		r.Post("/favorites", h.Favorites.Add)
		r.Get("/favorites", h.Favorites.List)
		r.Delete("/favorites", h.Favorites.Remove)

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/services", h.Services.Create)
			r.Put("/services/{id}", h.Services.Update)
			r.Delete("/services/{id}", h.Services.Delete)

			r.Get("/appointments", h.Appointments.ListAll)
			r.Put("/appointments/{id}/status", h.Appointments.SetStatus)
			r.Delete("/appointments/{id}", h.Appointments.Delete)

			r.Put("/users/block", h.Users.Block)
			r.Post("/working-hours", h.WorkingHours.Upsert)
		})
	})

	return r
}
