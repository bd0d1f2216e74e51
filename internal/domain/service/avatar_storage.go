// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"context"
	"io"
)

// AvatarStorage defines the interface for persisting uploaded avatar images
// in external object storage and resolving them to a stable reference.
type AvatarStorage interface {
	// Upload streams the avatar content into the bucket and returns the
	// reference under which it can be served. An empty reference is an error.
	Upload(ctx context.Context, filename, contentType string, content io.Reader) (string, error)
}
