package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/models"
	"salon-booking-api/internal/utils"
)

type FavoriteHandler struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

type favoriteReq struct {
	ServiceID int64 `json:"service_id"`
}

// Add is an idempotent set insert; favoriting twice is a no-op.
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req favoriteReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.ServiceID == 0 {
		utils.JSONError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	_, err := h.DB.Exec(`
		INSERT INTO favorites (user_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, c.UserID, req.ServiceID)
	if err != nil {
		h.Log.Error("add favorite", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error adding to favorites")
		return
	}

	utils.Message(w, http.StatusOK, "service added to favorites")
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	favorites := []models.FavoriteService{}
	err := h.DB.Select(&favorites, `
		SELECT services.id, services.name, services.description, services.price
		FROM services
		JOIN favorites ON services.id = favorites.service_id
		WHERE favorites.user_id = $1
	`, c.UserID)
	if err != nil {
		h.Log.Error("list favorites", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching favorites")
		return
	}

	utils.JSON(w, http.StatusOK, favorites)
}

// Remove is idempotent: removing an absent favorite is still a 200.
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req favoriteReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.ServiceID == 0 {
		utils.JSONError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	_, err := h.DB.Exec(`
		DELETE FROM favorites WHERE user_id=$1 AND service_id=$2
	`, c.UserID, req.ServiceID)
	if err != nil {
		h.Log.Error("remove favorite", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error removing from favorites")
		return
	}

	utils.Message(w, http.StatusOK, "service removed from favorites")
}
