package model

import "time"

// Store represents a ratable store. Stores are created only through the
// admin flow that creates the owning user in the same transaction.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OwnerID   uint      `json:"owner_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:60;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Address   string    `json:"address,omitempty" gorm:"size:400"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// StoreWithRating is a Store row joined with its rating aggregates and,
// for end-user listings, the calling user's own rating.
type StoreWithRating struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
	UserRating    *int      `json:"user_rating"`
}
