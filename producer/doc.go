// Package producer generates the patterns sent to the target.
package producer

import "context"

// Source produces a sequence of values.
type Source interface {
	// Yield sends the number of items to the channel count and then all
	// values to ch. Sending stops and ch is closed when an error occurs or
	// the context is cancelled. The channel count should be buffered with a
	// size of at least one, so sending the count does not block.
	Yield(ctx context.Context, ch chan<- string, count chan<- int) error
}
