package orderly

import "context"

// User is an authenticated principal of the platform.
type User struct {
	ID     ID     `json:"id,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// ops for user errors and op logs.
const (
	OpFindUserByID    = "FindUserByID"
	OpFindUserByEmail = "FindUserByEmail"
	OpFindUsers       = "FindUsers"
	OpCreateUser      = "CreateUser"
	OpDeleteUser      = "DeleteUser"
)

// UserService represents a service for managing user data.
type UserService interface {
	// Returns a single user by ID.
	FindUserByID(ctx context.Context, id ID) (*User, error)

	// Returns a single user by email address.
	FindUserByEmail(ctx context.Context, email string) (*User, error)

	// Returns all users; filtering is left to callers since the user
	// population is small.
	FindUsers(ctx context.Context) ([]*User, error)

	// Creates a new user and sets u.ID with the new identifier.
	CreateUser(ctx context.Context, u *User) error

	// Removes a user by ID.
	DeleteUser(ctx context.Context, id ID) error
}
