package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/utils"
)

type UserHandler struct {
	DB       *sqlx.DB
	Secret   string
	TokenTTL string
	Log      *slog.Logger
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	IsAdmin bool   `db:"is_admin" json:"is_admin"`
}

// -------------- REGISTER ---------------------

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.Log.Error("hash password", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error registering user")
		return
	}

	// always a regular account; admins are seeded out of band
	_, err = h.DB.Exec(`
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
	`, req.Name, req.Email, hash)

	if isUniqueViolation(err) {
		utils.JSONError(w, http.StatusBadRequest, "email already exists")
		return
	}
	if err != nil {
		h.Log.Error("register user", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error registering user")
		return
	}

	utils.Message(w, http.StatusCreated, "user registered successfully")
}

// -------------- LOGIN ------------------------

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var u struct {
		ID        int64  `db:"id"`
		Email     string `db:"email"`
		Password  string `db:"password_hash"`
		IsAdmin   bool   `db:"is_admin"`
		IsBlocked bool   `db:"is_blocked"`
	}
	err := h.DB.Get(&u, `
		SELECT id, email, password_hash, is_admin, is_blocked
		FROM users
		WHERE email=$1
	`, req.Email)

	if errors.Is(err, sql.ErrNoRows) {
		utils.JSONError(w, http.StatusBadRequest, "invalid credentials")
		return
	}
	if err != nil {
		h.Log.Error("login lookup", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error logging in")
		return
	}

	if !auth.CheckPassword(u.Password, req.Password) {
		utils.JSONError(w, http.StatusBadRequest, "invalid credentials")
		return
	}

	// block is enforced here only; already-issued tokens ride out their TTL
	if u.IsBlocked {
		utils.JSONError(w, http.StatusForbidden, "your account has been blocked")
		return
	}

	token, err := auth.GenerateToken(u.ID, u.Email, u.IsAdmin, h.Secret, h.TokenTTL)
	if err != nil {
		h.Log.Error("generate token", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error logging in")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"message": "login successful",
		"token":   token,
	})
}

// -------------- LIST (protected) -------------

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users := []userSummary{}
	if err := h.DB.Select(&users, `SELECT id, name, email, is_admin FROM users`); err != nil {
		h.Log.Error("list users", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching users")
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// -------------- ME ---------------------------

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var me struct {
		ID    int64  `db:"id" json:"id"`
		Name  string `db:"name" json:"name"`
		Email string `db:"email" json:"email"`
	}
	err := h.DB.Get(&me, `SELECT id, name, email FROM users WHERE id=$1`, c.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		h.Log.Error("fetch profile", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error fetching user")
		return
	}

	utils.JSON(w, http.StatusOK, me)
}

// -------------- UPDATE PROFILE ---------------

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(r)
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" || req.Email == "" {
		utils.JSONError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	var err error
	if req.Password != "" {
		var hash string
		hash, err = auth.HashPassword(req.Password)
		if err == nil {
			_, err = h.DB.Exec(`
				UPDATE users SET name=$1, email=$2, password_hash=$3 WHERE id=$4
			`, req.Name, req.Email, hash, c.UserID)
		}
	} else {
		_, err = h.DB.Exec(`
			UPDATE users SET name=$1, email=$2 WHERE id=$3
		`, req.Name, req.Email, c.UserID)
	}

	if isUniqueViolation(err) {
		utils.JSONError(w, http.StatusBadRequest, "email already exists")
		return
	}
	if err != nil {
		h.Log.Error("update profile", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating profile")
		return
	}

	utils.Message(w, http.StatusOK, "profile updated successfully")
}

// -------------- BLOCK (admin) ----------------

func (h *UserHandler) Block(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int64 `json:"user_id"`
		IsBlocked bool  `json:"is_blocked"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.UserID == 0 {
		utils.JSONError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if _, err := h.DB.Exec(`UPDATE users SET is_blocked=$1 WHERE id=$2`, req.IsBlocked, req.UserID); err != nil {
		h.Log.Error("block user", "error", err)
		utils.JSONError(w, http.StatusInternalServerError, "error updating user status")
		return
	}

	if req.IsBlocked {
		utils.Message(w, http.StatusOK, "user blocked successfully")
	} else {
		utils.Message(w, http.StatusOK, "user unblocked successfully")
	}
}
