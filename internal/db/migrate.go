package db

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is IF NOT EXISTS /
// constraint-idempotent, so running it on every boot is safe.
func Migrate(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}
