package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin account with authentication and optional 2FA.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Has2FA returns true if the user has completed TOTP enrollment. Accounts
// without 2FA log in with credentials alone.
func (u *User) Has2FA() bool {
	return u.TOTPEnabled
}
