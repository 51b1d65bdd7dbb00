package model

import "time"

// User represents a registered user account.
//
// We use GitHub OAuth as the identity provider, so the primary key is the
// provider-issued identity string (e.g. "github:1234567"). We deliberately do
// NOT mint our own surrogate key: the identity is opaque, stable, and unique
// per provider account, which is exactly what a primary key needs, and it is
// also what goes into the JWT subject claim.
//
// WHY Email string (not *string)?
// The provider returns the primary public email, which can be empty if the
// user has hidden it. We use an empty string as the zero value rather than a
// nullable pointer — simpler to work with and safe to display.
//
// Lifecycle: created on first successful login, profile fields overwritten on
// every subsequent login (upsert), never deleted by this system.
type User struct {
	Identity  string    `json:"identity"`  // provider-issued, e.g. "github:1234567"
	Email     string    `json:"email"`     // may be empty
	FirstName string    `json:"firstName"` // may be empty
	LastName  string    `json:"lastName"`  // may be empty
	AvatarURL string    `json:"avatarUrl"` // profile picture URL, may be empty
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
