package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/models"
	"salon-booking-api/internal/utils"
)

type ReviewHandler struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

// ---------------------- ADD ----------------------

func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		ServiceID int64  `json:"service_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		utils.JSONError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	// friendly pre-check; the UNIQUE(user_id, service_id) constraint is
	// what actually holds the invariant under concurrent submission
	var exists bool
	err := h.DB.Get(&exists, `
		SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id=$1 AND service_id=$2)
	`, c.UserID, req.ServiceID)
	if err != nil {
		h.Log.Error("review pre-check", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error adding review")
		return
	}
	if exists {
		utils.JSONError(w, http.StatusBadRequest, "you have already reviewed this service")
		return
	}

	_, err = h.DB.Exec(`
		INSERT INTO reviews (user_id, service_id, rating, comment)
		VALUES ($1, $2, $3, $4)
	`, c.UserID, req.ServiceID, req.Rating, req.Comment)

	if isUniqueViolation(err) {
		utils.JSONError(w, http.StatusBadRequest, "you have already reviewed this service")
		return
	}
	if err != nil {
		h.Log.Error("add review", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error adding review")
		return
	}

	utils.Message(w, http.StatusCreated, "review added successfully")
}

// ---------------------- LIST (public) ----------------------

func (h *ReviewHandler) ListByService(w http.ResponseWriter, r *http.Request) {
	serviceID, _ := strconv.ParseInt(chi.URLParam(r, "service_id"), 10, 64)

	reviews := []models.ServiceReview{}
	err := h.DB.Select(&reviews, `
		SELECT r.id, u.name AS user_name, r.rating, r.comment, r.created_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.service_id = $1
		ORDER BY r.created_at DESC
	`, serviceID)
	if err != nil {
		h.Log.Error("list reviews", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching reviews")
		return
	}

	utils.JSON(w, http.StatusOK, reviews)
}

// ---------------------- UPDATE (owner only) ----------------------

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		utils.JSONError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	// admins get no override here; edits are strictly owner-only
	var exists bool
	err := h.DB.Get(&exists, `
		SELECT EXISTS(SELECT 1 FROM reviews WHERE id=$1 AND user_id=$2)
	`, id, c.UserID)
	if err != nil {
		h.Log.Error("review ownership check", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating review")
		return
	}
	if !exists {
		utils.JSONError(w, http.StatusForbidden, "you can only edit your own reviews")
		return
	}

	if _, err := h.DB.Exec(`UPDATE reviews SET rating=$1, comment=$2 WHERE id=$3`, req.Rating, req.Comment, id); err != nil {
		h.Log.Error("update review", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating review")
		return
	}

	utils.Message(w, http.StatusOK, "review updated successfully")
}

// ---------------------- DELETE (owner or admin) ----------------------

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var ownerID int64
	err := h.DB.Get(&ownerID, `SELECT user_id FROM reviews WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		utils.JSONError(w, http.StatusNotFound, "review not found")
		return
	}
	if err != nil {
		h.Log.Error("review lookup", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error deleting review")
		return
	}

	if ownerID != c.UserID && !c.IsAdmin {
		utils.JSONError(w, http.StatusForbidden, "you can only delete your own reviews")
		return
	}

	if _, err := h.DB.Exec(`DELETE FROM reviews WHERE id=$1`, id); err != nil {
		h.Log.Error("delete review", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error deleting review")
		return
	}

	utils.Message(w, http.StatusOK, "review deleted successfully")
}
