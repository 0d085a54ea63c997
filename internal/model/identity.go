package model

import "time"

// IdentityID uniquely identifies an authenticatable account
type IdentityID string

// Identity is an account that can log in. Role membership is not stored
// here: it is derived from the attached profiles (and IsAdminCapable),
// so an identity can be a player, an admin, both, or neither.
type Identity struct {
	ID             IdentityID
	Username       string // login username (immutable, case-sensitive)
	Email          string
	PasswordHash   string // bcrypt hash
	IsAdminCapable bool
	CreatedAt      time.Time
}

// PlayerProfile is the player role attachment for an Identity
type PlayerProfile struct {
	IdentityID  IdentityID
	DisplayName string // defaults to the username when left blank
	CreatedAt   time.Time
}

// AdminProfile is the admin role attachment for an Identity
type AdminProfile struct {
	IdentityID IdentityID
	StaffNote  string
	CreatedAt  time.Time
}
