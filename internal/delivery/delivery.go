// Package delivery defines the contract every transport front end fulfills.
package delivery

import "context"

// Delivery is a long-running request entry point, such as an HTTP server.
// Implementations block in Serve until the context is cancelled or the
// listener fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
