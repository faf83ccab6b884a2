package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/models"
	"salon-booking-api/internal/utils"
)

type AppointmentHandler struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type bookReq struct {
	ServiceID int64  `json:"service_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ---------------------- CREATE ----------------------

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req bookReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.ServiceID == 0 {
		utils.JSONError(w, http.StatusBadRequest, "service_id is required")
		return
	}

	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "time must be HH:MM")
		return
	}

	var serviceExists bool
	if err := h.DB.Get(&serviceExists, `SELECT EXISTS(SELECT 1 FROM services WHERE id=$1)`, req.ServiceID); err != nil {
		h.Log.Error("service lookup", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error booking appointment")
		return
	}
	if !serviceExists {
		utils.JSONError(w, http.StatusNotFound, "service not found")
		return
	}

	// Slot capacity. A configured weekday caps concurrent bookings at the
	// same date+time; an unconfigured weekday carries no cap. The
	// count-then-insert pair is not transactional, so the cap is
	// best-effort under concurrent submission.
	full, err := h.slotFull(day, req.Date, req.Time)
	if err != nil {
		h.Log.Error("slot capacity check", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error booking appointment")
		return
	}
	if full {
		utils.JSONError(w, http.StatusConflict, "slot is full")
		return
	}

	var appt models.Appointment
	err = h.DB.Get(&appt, `
		INSERT INTO appointments (user_id, service_id, date, time, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, user_id, service_id, date, time, status, created_at
	`, c.UserID, req.ServiceID, req.Date, req.Time)
	if err != nil {
		h.Log.Error("book appointment", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error booking appointment")
		return
	}

	utils.JSON(w, http.StatusCreated, appt)
}

func (h *AppointmentHandler) slotFull(day time.Time, date, at string) (bool, error) {
	var wh models.WorkingHours
	err := h.DB.Get(&wh, `
		SELECT id, day, open_time, close_time, max_appointments_per_slot
		FROM working_hours WHERE day=$1
	`, strings.ToLower(day.Weekday().String()))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var taken int
	err = h.DB.Get(&taken, `
		SELECT COUNT(*) FROM appointments
		WHERE date=$1 AND time=$2 AND status != 'cancelled'
	`, date, at)
	if err != nil {
		return false, err
	}
	return taken >= wh.MaxAppointmentsPerSlot, nil
}

// ---------------------- LIST MINE ----------------------

func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	appts := []models.MyAppointment{}
	err := h.DB.Select(&appts, `
		SELECT a.id, s.name AS service_name, a.date, a.time, a.status
		FROM appointments a
		JOIN services s ON a.service_id = s.id
		WHERE a.user_id = $1
	`, c.UserID)
	if err != nil {
		h.Log.Error("list my appointments", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching appointments")
		return
	}

	utils.JSON(w, http.StatusOK, appts)
}

// ---------------------- LIST ALL (admin) ----------------------

func (h *AppointmentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	appts := []models.AdminAppointment{}
	err := h.DB.Select(&appts, `
		SELECT a.id, u.name AS user_name, s.name AS service_name, a.date, a.time, a.status
		FROM appointments a
		JOIN users u ON a.user_id = u.id
		JOIN services s ON a.service_id = s.id
	`)
	if err != nil {
		h.Log.Error("list appointments", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching appointments")
		return
	}

	utils.JSON(w, http.StatusOK, appts)
}

// ---------------------- SET STATUS (admin) ----------------------

// SetStatus accepts only the two terminal targets; pending is not a valid
// input. The update is idempotent and does not care what the current
// status is.
func (h *AppointmentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req struct {
		Status string `json:"status"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Status != models.StatusConfirmed && req.Status != models.StatusCancelled {
		utils.JSONError(w, http.StatusBadRequest, "invalid status value")
		return
	}

	if _, err := h.DB.Exec(`UPDATE appointments SET status=$1 WHERE id=$2`, req.Status, id); err != nil {
		h.Log.Error("update appointment status", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating appointment status")
		return
	}

	utils.Message(w, http.StatusOK, "appointment "+req.Status+" successfully")
}

// ---------------------- DELETE (admin) ----------------------

// Delete is idempotent: a missing id is still a 200.
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if _, err := h.DB.Exec(`DELETE FROM appointments WHERE id=$1`, id); err != nil {
		h.Log.Error("delete appointment", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error deleting appointment")
		return
	}

	utils.Message(w, http.StatusOK, "appointment deleted successfully")
}
