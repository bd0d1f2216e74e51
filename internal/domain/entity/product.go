// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item that can be placed into a cart.
// Its price is the authoritative value used when an order snapshot is built.
type Product struct {
	ID          uuid.UUID // The unique ID of the catalog item.
	Name        string    // Display name, copied into order lines at purchase time.
	Description string    // Free-form description shown on the product detail view.
	Price       float64   // Current unit price. Orders snapshot this value.
	ImageURL    string    // Optional product image reference.
	Stock       int       // Informational stock counter. Not a reservation system.
	CreatedAt   time.Time // Timestamp of when this product was created.
	UpdatedAt   time.Time // Timestamp of the last modification to this product.
}
