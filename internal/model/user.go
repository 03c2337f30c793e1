package model

import "time"

// User represents an authenticated user with a prepaid credit balance.
// Users are created on the first successful session exchange for a new
// email and are never deleted.
type User struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;size:64"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name      string    `json:"name" gorm:"size:255"`
	Picture   string    `json:"picture,omitempty" gorm:"size:512"`
	Credits   int       `json:"credits" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
