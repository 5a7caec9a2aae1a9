package domain

import "time"

// Roles a user can hold
const (
	RoleUser    = "user"    // Regular customer role
	RoleManager = "manager" // Manager role, may process orders
)

// User Model (auth store)
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`                 // Primary key
	Username     string    `json:"username" gorm:"uniqueIndex;not null"` // Unique username
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`    // Unique email, token subject
	PasswordHash string    `json:"-" gorm:"not null"`                    // Bcrypt hash, never serialized
	Role         string    `json:"role" gorm:"not null;default:user"`    // Role: user or manager
	CreatedAt    time.Time `json:"created_at"`                           // Set on insert
	UpdatedAt    time.Time `json:"updated_at"`                           // Bumped on any mutation
	Sessions     []Session `json:"-" gorm:"foreignKey:UserID"`           // Sessions issued to this user
}
