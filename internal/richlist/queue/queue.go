// Package queue provides the deduplicating work queue of active addresses.
package queue

import (
	"context"
	"errors"
	"fmt"
)

// Mode selects which end Receive consumes from.
type Mode string

const (
	// ModeLIFO hands out the most recently pushed items first.
	ModeLIFO Mode = "lifo"
	// ModeFIFO hands out the oldest items first.
	ModeFIFO Mode = "fifo"
)

// ErrModeMismatch is returned when a queue is reopened with a different mode.
var ErrModeMismatch = errors.New("queue exists with a different mode")

// Backend opens named queues.
type Backend interface {
	CreateQueueIfNotExist(ctx context.Context, name string, mode Mode) (Queue, error)
}

// Queue holds each item at most once. Pushing an item already queued moves it to the back, so
// in LIFO mode it becomes the next item received.
type Queue interface {
	Push(ctx context.Context, items ...string) error
	// Receive atomically claims up to max items. An empty result means the queue is drained.
	Receive(ctx context.Context, max int) ([]string, error)
	Len(ctx context.Context) (int64, error)
}

// Name returns the queue name used for the active addresses of network.
func Name(network string) string {
	return "active-address." + network
}

func normalizeMode(mode Mode) (Mode, error) {
	switch mode {
	case "", ModeLIFO:
		return ModeLIFO, nil
	case ModeFIFO:
		return ModeFIFO, nil
	default:
		return "", fmt.Errorf("unsupported queue mode %q", mode)
	}
}
