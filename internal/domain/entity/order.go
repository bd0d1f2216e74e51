// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order is the immutable projection of a cart at the moment of purchase,
// decoupled from future product and price changes.
type Order struct {
	ID        uuid.UUID    // The unique ID of this order.
	UserID    uuid.UUID    // The user who placed the order.
	Lines     []*OrderLine // Snapshot of the purchased cart lines.
	Total     float64      // Sum of all line subtotals, recomputed server-side.
	OrderDate time.Time    // The moment the snapshot was taken.
	CreatedAt time.Time    // Timestamp of when this order row was persisted.
}

// OrderLine is a single purchased position. Name and price are copied from the
// catalog at submission time so later catalog edits cannot rewrite history.
type OrderLine struct {
	Name     string  // Product name at purchase time.
	Quantity int     // Number of units purchased.
	Price    float64 // Unit price at purchase time.
	Subtotal float64 // Price multiplied by quantity.
}
