// Package delivery defines the contract shared by every inbound transport of the service.
package delivery

import "context"

// Delivery is a long-running inbound transport started by fx after all providers are built.
type Delivery interface {
	// Serve blocks until the transport stops or fails to start.
	Serve(ctx context.Context) error
}
