package channel

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a channel id does not exist in the registry
var ErrNotFound = errors.New("channel not found")

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for the channel registry
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Get(ctx context.Context, id string) (Channel, error)
	// List returns all channels in creation order
	List(ctx context.Context) ([]Channel, error)
}

// Writer provides write operations for the channel registry
type Writer interface {
	/* Store persists a channel under its ID
	 * The whole registry must be durable before Store returns
	 */
	Store(ctx context.Context, ch Channel) error
	// Delete removes a channel, returning ErrNotFound for unknown ids
	Delete(ctx context.Context, id string) error
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
