package models

import "time"

const (
	ScanValid     = "valid"
	ScanInvalid   = "invalid"
	ScanCancelled = "cancelled"
)

// ScanRecord is one journaled redemption attempt.
type ScanRecord struct {
	ID        string    `json:"id"`
	EventID   int64     `json:"event_id"`
	Payload   string    `json:"payload"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
