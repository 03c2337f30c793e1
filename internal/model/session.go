package model

import "time"

// Session is a server-side record of a bearer session token. A user may
// hold any number of concurrent sessions; expiry is checked at resolution
// time, expired rows are simply never honored.
type Session struct {
	Token     string    `json:"session_token" gorm:"primaryKey;size:64"`
	UserID    string    `json:"user_id" gorm:"size:64;not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its validity window.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
