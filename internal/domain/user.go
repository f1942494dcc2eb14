package domain

import "time"

// User is an account as held by the credential store.
// Email is matched exactly; no case folding happens anywhere.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
