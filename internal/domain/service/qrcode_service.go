// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services.
// The post-order confirmation view renders the order reference as a QR image.
type QRCodeService interface {
	// GenerateOrderQR generates a PNG QR code encoding the order reference.
	GenerateOrderQR(orderID uuid.UUID, total float64) ([]byte, error)

	// ParseOrderQR parses QR code data and returns the encoded order ID.
	ParseOrderQR(qrData string) (uuid.UUID, error)
}
