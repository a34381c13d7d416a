package directory

import "github.com/google/uuid"

// UserSummary is the listing projection: one row per user, with the names of
// the roles the user currently holds.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Roles     []string  `json:"roles"`
}

// UserEdit is the edit-form projection. A zero value is the blank template
// used when creating a new user.
type UserEdit struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
}

// CreateUserParams contains parameters for creating a new user
type CreateUserParams struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password"`
}

// UpdateUserParams contains parameters for updating a user. Email and
// Password are both required; see DirectoryService.UpdateUser.
type UpdateUserParams struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Password    string    `json:"password"`
}
