package auth

import "errors"

// UserRepository defines operations for credential persistence and retrieval.
// Mongo is the primary backend; MariaDB and an in-memory implementation are
// provided behind the same interface so the rest of the code never cares.
type UserRepository interface {
	// GetUserByUsername returns a user by username (case-insensitive). If the user
	// is not found, (nil, ErrUserNotFound) should be returned.
	GetUserByUsername(username string) (*User, error)

	// CreateUser creates a new user with the supplied data and returns the stored
	// user instance. Caller is expected to pass a bcrypt-hashed password.
	// Implementations must enforce unique usernames and return ErrUserExists on
	// conflict; the underlying storage error must never leak to the caller.
	CreateUser(username string, passwordHash string) (*User, error)
}

// Domain-level errors returned by the repository.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)
