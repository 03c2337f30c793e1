package model

import "time"

// WebhookEvent marks a payment-processor event as processed. The primary
// key on the external event id is the dedupe guard: a replayed event fails
// the insert and grants nothing a second time.
type WebhookEvent struct {
	EventID   string    `json:"event_id" gorm:"primaryKey;size:255"`
	Type      string    `json:"type" gorm:"size:128"`
	CreatedAt time.Time `json:"created_at"`
}
