// Package domain defines core types and contracts for the batch archive
package domain

import "time"

// BatchRef identifies one persisted batch
type BatchRef struct {
	ID        string    `json:"batch_id" example:"6f1e1d2c-5a0b-4c3d-9e8f-7a6b5c4d3e2f"`
	Source    string    `json:"source" example:"survey-2026-08"`
	Items     int       `json:"items" example:"120"`
	CreatedAt time.Time `json:"created_at" example:"2026-08-30T12:00:00Z"`
}
