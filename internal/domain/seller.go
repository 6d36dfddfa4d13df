package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSellerRating is the rating new sellers start with.
const DefaultSellerRating = 5.0

// Seller represents a registered seller profile. At most one exists per user.
type Seller struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	ContactPhone string    `json:"contact_phone" db:"contact_phone"`
	Location     string    `json:"location" db:"location"`
	ProfileImage string    `json:"profile_image" db:"profile_image"`
	Rating       float64   `json:"rating" db:"rating"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
