package domain

import (
	"time"

	"github.com/google/uuid"
)

// BadgeType is a merchandising tag attached to a product.
type BadgeType string

const (
	BadgeRecentlyAdded BadgeType = "recently-added"
	BadgeTopRated      BadgeType = "top-rated"
	BadgeQuickResponse BadgeType = "quick-response"
)

// ValidBadgeTypes is the closed set of badge tags the store accepts.
var ValidBadgeTypes = []BadgeType{BadgeRecentlyAdded, BadgeTopRated, BadgeQuickResponse}

// Product represents a marketplace listing
type Product struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Price       float64     `json:"price" db:"price"`
	Image       string      `json:"image" db:"image"`
	Category    string      `json:"category" db:"category"`
	Location    string      `json:"location" db:"location"`
	SellerID    uuid.UUID   `json:"seller_id" db:"seller_id"`
	SellerName  string      `json:"seller_name,omitempty"`
	Badges      []BadgeType `json:"badges,omitempty"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// Category represents a product category
type Category struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Location represents a neighbourhood products can be listed in
type Location struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
