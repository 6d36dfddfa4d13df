package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a direct message between two users, optionally about a product.
type Message struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	SenderID    uuid.UUID  `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID  `json:"recipient_id" db:"recipient_id"`
	ProductID   *uuid.UUID `json:"product_id,omitempty" db:"product_id"`
	Body        string     `json:"body" db:"body"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
