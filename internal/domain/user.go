// internal/domain/user.go
package domain

import "time"

// User represents a registered account.
// The password hash is never serialized in API responses.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`     // Unique username
	Email        string    `db:"email" json:"email"`           // Unique contact address
	PasswordHash string    `db:"password_hash" json:"-"`       // bcrypt digest, opaque
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`     // Administrative flag
	CreatedAt    time.Time `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewUser creates a new User instance with the given credentials.
func NewUser(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
