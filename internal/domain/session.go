package domain

import "time"

// Session Model (auth store)
// One row is recorded per successful login. Rows are never revoked;
// token expiry is enforced by the signed exp claim.
type Session struct {
	ID           uint      `json:"id" gorm:"primaryKey"`          // Primary key
	UserID       uint      `json:"user_id" gorm:"index"`          // Foreign key to User
	SessionToken string    `json:"session_token" gorm:"not null"` // Issued bearer token
	ExpiresAt    time.Time `json:"expires_at"`                    // Mirrors the token exp claim
}
