package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/utils"
)

type WorkingHoursHandler struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

// Upsert replaces the row for a day of week. Open/close ordering is not
// validated, matching the admin UI's expectations.
func (h *WorkingHoursHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day                    string `json:"day"`
		OpenTime               string `json:"open_time"`
		CloseTime              string `json:"close_time"`
		MaxAppointmentsPerSlot int    `json:"max_appointments_per_slot"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Day == "" {
		utils.JSONError(w, http.StatusBadRequest, "day is required")
		return
	}

	_, err := h.DB.Exec(`
		INSERT INTO working_hours (day, open_time, close_time, max_appointments_per_slot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day)
		DO UPDATE SET open_time=$2, close_time=$3, max_appointments_per_slot=$4
	`, strings.ToLower(req.Day), req.OpenTime, req.CloseTime, req.MaxAppointmentsPerSlot)
	if err != nil {
		h.Log.Error("upsert working hours", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating working hours")
		return
	}

	utils.Message(w, http.StatusOK, "working hours updated successfully")
}
