// Package entity holds the shape shared by every marketplace record: a
// public numeric id assigned by a monotonic per-table sequence (never
// reused), a soft-delete status flag, and creator/updater audit stamps.
package entity

import "time"

// Audit is embedded in every domain record.
type Audit struct {
	// Status is the soft-delete flag: false means deleted for all read
	// paths. Hard-delete entities remove the row instead.
	Status    bool      `json:"status"`
	CreatedBy int64     `json:"created_by"`
	UpdatedBy *int64    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
