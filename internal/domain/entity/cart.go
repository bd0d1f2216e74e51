// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one product reference plus a quantity within a user's in-progress selection.
// Quantity is always >= 1; a decrement that would reach zero removes the line instead.
type CartLine struct {
	UserID    uuid.UUID // The owner of this cart line.
	ProductID uuid.UUID // The referenced catalog item.
	Product   *Product  // The populated product, nil when not loaded.
	Quantity  int       // Number of units selected, >= 1.
	CreatedAt time.Time // Timestamp used to keep the cart in insertion order.
	UpdatedAt time.Time // Timestamp of the last quantity change.
}

// Subtotal is the line price at the product's current catalog price.
// Returns 0 when the product association is not loaded.
func (l *CartLine) Subtotal() float64 {
	if l.Product == nil {
		return 0
	}

	return l.Product.Price * float64(l.Quantity)
}
