package models

import "time"

// Setting is a single row of the application's key/value configuration store.
// Paths are unique; values are opaque strings interpreted by the frontend.
type Setting struct {
	ConfigID  int64     `db:"config_id" json:"config_id"`
	Path      string    `db:"path" json:"path"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
