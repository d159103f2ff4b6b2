package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	JobTitle     *string   `json:"jobTitle,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave
// the optional columns untouched only in the sense of being stored as
// NULL; the three optional fields are always written on update.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	JobTitle  *string
	Location  *string
	Bio       *string
}
