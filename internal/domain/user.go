package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. Its ID keys every stored resume artifact.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
