package model

import "time"

// Rating is a single user's 1-5 star rating of a store. The composite
// unique index makes resubmission an update, never a duplicate row.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_store"`
	StoreID   uint      `json:"store_id" gorm:"not null;uniqueIndex:idx_user_store;index"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User  *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Store *Store `json:"-" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// RatingWithUser is a Rating row joined with the rater's public fields,
// used on the store-owner dashboard and the per-store ratings listing.
type RatingWithUser struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
