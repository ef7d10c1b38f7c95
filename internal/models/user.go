package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a display-name placeholder; there are no credentials.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
