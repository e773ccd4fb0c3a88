package domain

import "time"

// User is an account known to the local auth provider.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the signed-in user threaded explicitly through every
// operation that reads or writes owned records.
type Identity struct {
	UserID string
	Email  string
}
