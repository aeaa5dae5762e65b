package model

import "time"

// Roles a user can hold. Role is fixed at creation; there is no update-role operation.
const (
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleStoreOwner = "store_owner"
)

// UserDetail is the admin view of a user joined with the owned store
// summary. Store fields stay null for users that own nothing.
type UserDetail struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address,omitempty"`
	Role          string    `json:"role"`
	CreatedAt     time.Time `json:"created_at"`
	StoreID       *uint     `json:"store_id"`
	StoreName     *string   `json:"store_name"`
	AverageRating *float64  `json:"average_rating"`
}

// User represents an account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Address      string    `json:"address,omitempty" gorm:"size:400"`
	Role         string    `json:"role" gorm:"size:20;not null;index;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
