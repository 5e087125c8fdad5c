package auth

import "time"

// User is a registered gateway account. The username doubles as the player's
// wallet address: ownership checks compare it to on-chain owner addresses,
// so it is always stored lowercased.
type User struct {
	Username     string    // Unique username (lowercase wallet address)
	PasswordHash string    // bcrypt hashed password (60 chars)
	CreatedAt    time.Time // Account creation timestamp (server time)
}
