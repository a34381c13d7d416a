package identity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record owned by the identity store.
type User struct {
	ID             uuid.UUID  `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModifiedAt time.Time  `json:"last_modified_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	Email          string     `json:"email"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	PasswordHash   string     `json:"-"`
}

// Role represents a role in the system
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CreateUserParams contains parameters for creating a new user
type CreateUserParams struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	PasswordHash string `json:"-"`
}

// UpdateUserParams contains parameters for updating a user.
// All fields are applied; the directory service decides what goes in here.
type UpdateUserParams struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	PasswordHash string    `json:"-"`
}
