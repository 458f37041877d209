// Package accounts manages the administrative principals behind the admin
// panel. The bootstrap superadmin is seeded first and therefore holds the
// lowest id; it can never be deleted, and no account can delete itself.
package accounts

import (
	"errors"
	"time"
)

// BootstrapID is the id of the seeded superadmin. Seeding runs before the
// server accepts requests, so the first row in users is always the
// bootstrap account.
const BootstrapID int64 = 1

var (
	ErrNotFound  = errors.New("account not found")
	ErrDuplicate = errors.New("username already taken")
	// ErrProtected covers both delete guards: the bootstrap account and the
	// caller's own account.
	ErrProtected = errors.New("account cannot be deleted")
)

type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	MFAEnabled   bool
	MFASecretEnc []byte
	CreatedAt    time.Time
}

// Info is the listing shape: no hash, no MFA material.
type Info struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
