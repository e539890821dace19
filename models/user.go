package models

import "time"

// User represents a laboratory account entity used for authentication and
// authorization. It contains identity attributes, credential data and the
// lockout bookkeeping fields updated on every sign-in attempt.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is stable across sessions and is the value all ownership and
	// permission checks compare against.
	ID int64 `json:"id"`

	// Email is the unique sign-in identifier of the account.
	Email string `json:"email"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// HashedPassword stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is never serialized.
	HashedPassword string `json:"-"`

	// SignAttempts counts consecutive failed sign-in attempts. Reset to
	// zero on a successful authentication.
	SignAttempts int `json:"-"`

	// LastSignAttempt is the timestamp of the most recent sign-in attempt,
	// successful or not. Nil for accounts that never signed in.
	LastSignAttempt *time.Time `json:"-"`

	// Active indicates whether the account may authenticate at all.
	// Cleared permanently when SignAttempts reaches the disable threshold;
	// only manual intervention re-enables the account.
	Active bool `json:"active"`

	// Manager grants the MANAGER role when set.
	Manager bool `json:"manager"`

	// Admin grants the ADMIN role when set.
	Admin bool `json:"admin"`

	// ExpiredPassword forces the user to change their password on next
	// sign-in. Materializes as a transient authority, not a role.
	ExpiredPassword bool `json:"expiredPassword"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
