package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/models"
	"salon-booking-api/internal/utils"
)

type ServiceHandler struct {
	DB  *sqlx.DB
	Log *slog.Logger
}

type serviceReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

// ---------------------- LIST (public) ----------------------

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	services := []models.Service{}
	err := h.DB.Select(&services, `
		SELECT id, name, description, price, duration, created_at
		FROM services ORDER BY id
	`)
	if err != nil {
		h.Log.Error("list services", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching services")
		return
	}
	utils.JSON(w, http.StatusOK, services)
}

// ---------------------- CREATE (admin) ----------------------

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req serviceReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" {
		utils.JSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	var svc models.Service
	err := h.DB.Get(&svc, `
		INSERT INTO services (name, description, price, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, price, duration, created_at
	`, req.Name, req.Description, req.Price, req.Duration)
	if err != nil {
		h.Log.Error("create service", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error adding service")
		return
	}

	utils.JSON(w, http.StatusCreated, svc)
}

// ---------------------- UPDATE (admin) ----------------------

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req serviceReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" {
		utils.JSONError(w, http.StatusBadRequest, "name is required")
		return
	}

	_, err := h.DB.Exec(`
		UPDATE services
		SET name=$1, description=$2, price=$3, duration=$4
		WHERE id=$5
	`, req.Name, req.Description, req.Price, req.Duration, id)
	if err != nil {
		h.Log.Error("update service", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating service")
		return
	}

	utils.Message(w, http.StatusOK, "service updated successfully")
}

// ---------------------- DELETE (admin) ----------------------

// Delete is idempotent: a missing id is still a 200.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if _, err := h.DB.Exec(`DELETE FROM services WHERE id=$1`, id); err != nil {
		h.Log.Error("delete service", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error deleting service")
		return
	}

	utils.Message(w, http.StatusOK, "service deleted successfully")
}
