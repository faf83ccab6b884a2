package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/middleware"
)

type Handler struct {
	DB           *sqlx.DB
	Users        *UserHandler
	Services     *ServiceHandler
	Appointments *AppointmentHandler
	WorkingHours *WorkingHoursHandler
	Reviews      *ReviewHandler
	Favorites    *FavoriteHandler
}

func NewHandler(db *sqlx.DB, secret, tokenTTL string, log *slog.Logger) *Handler {
	return &Handler{
		DB:           db,
		Users:        &UserHandler{DB: db, Secret: secret, TokenTTL: tokenTTL, Log: log},
		Services:     &ServiceHandler{DB: db, Log: log},
		Appointments: &AppointmentHandler{DB: db, Log: log},
		WorkingHours: &WorkingHoursHandler{DB: db, Log: log},
		Reviews:      &ReviewHandler{DB: db, Log: log},
		Favorites:    &FavoriteHandler{DB: db, Log: log},
	}
}

// claims pulls the verified identity out of the request context. Handlers
// behind the auth middleware can rely on it being present.
func claims(r *http.Request) (*auth.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

// unique_violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
