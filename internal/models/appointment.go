package models

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ServiceID int64     `db:"service_id" json:"service_id"`
	Date      string    `db:"date" json:"date"` // YYYY-MM-DD
	Time      string    `db:"time" json:"time"` // HH:MM
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// MyAppointment is the user-facing listing row, joined with the service name.
type MyAppointment struct {
	ID          int64  `db:"id" json:"id"`
	ServiceName string `db:"service_name" json:"service_name"`
	Date        string `db:"date" json:"date"`
	Time        string `db:"time" json:"time"`
	Status      string `db:"status" json:"status"`
}

// AdminAppointment is the admin listing row, joined with user and service names.
type AdminAppointment struct {
	ID          int64  `db:"id" json:"id"`
	UserName    string `db:"user_name" json:"user_name"`
	ServiceName string `db:"service_name" json:"service_name"`
	Date        string `db:"date" json:"date"`
	Time        string `db:"time" json:"time"`
	Status      string `db:"status" json:"status"`
}
