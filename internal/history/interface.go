package history

import (
	"context"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

// Log is a bounded, append-only per-channel message log. Once a channel's
// window is full the oldest entry is evicted first (strict FIFO by arrival
// order, not wall clock). Appending to an unknown channel initialises it;
// reading an unknown channel yields an empty slice, not an error.
type Log interface {
	// Append stores msg at the tail of the channel's window.
	Append(ctx context.Context, channel string, msg domain.Message) error
	// Recent returns a consistent snapshot of the channel's window,
	// oldest first.
	Recent(ctx context.Context, channel string) ([]domain.Message, error)
}
