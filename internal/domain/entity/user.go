// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvatarNone is the sentinel stored when a user registered without uploading an avatar.
const AvatarNone = "none"

// User is the core entity in the system, representing a registered shopper.
// Username and email are each globally unique.
type User struct {
	ID           uuid.UUID   // The Global Unique Identifier (GUID) for the user.
	Username     string      // The user's unique display handle, usable as a login identifier.
	Email        string      // The user's primary contact email, also usable as a login identifier.
	PasswordHash string      // Bcrypt hash of the password. Never serialized and never logged.
	AvatarURL    string      // Object-storage URL of the avatar, or AvatarNone.
	Cart         []*CartLine // The user's in-progress selection, ordered by insertion.
	CreatedAt    time.Time   // Timestamp of when this user account was created.
	UpdatedAt    time.Time   // Timestamp of the last modification to this user's data.
}

// CartTotal computes the price of the whole cart from its lines.
func (u *User) CartTotal() float64 {
	var total float64
	for _, line := range u.Cart {
		total += line.Subtotal()
	}

	return total
}
