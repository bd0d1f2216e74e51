// Package delivery defines the contract implemented by every transport the
// application serves on.
package delivery

import "context"

// Delivery is a long-running transport endpoint, started by main and stopped
// through its fx lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
