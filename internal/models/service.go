package models

import "time"

type Service struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       float64   `db:"price" json:"price"`
	Duration    int       `db:"duration" json:"duration"` // minutes
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// WorkingHours is keyed uniquely by day of week ("monday".."sunday").
// Times are "HH:MM" 24h strings.
type WorkingHours struct {
	ID                     int64  `db:"id" json:"id"`
	Day                    string `db:"day" json:"day"`
	OpenTime               string `db:"open_time" json:"open_time"`
	CloseTime              string `db:"close_time" json:"close_time"`
	MaxAppointmentsPerSlot int    `db:"max_appointments_per_slot" json:"max_appointments_per_slot"`
}
