package history

import (
	"context"
	"sync"

	"github.com/Kazeyhaya/orkcord/internal/domain"
)

const DefaultCapacity = 100

// MemoryLog keeps per-channel history in process memory. Each channel owns a
// fixed-size ring buffer so an append never grows beyond the configured
// capacity.
type MemoryLog struct {
	mu       sync.RWMutex
	capacity int
	channels map[string]*ring
}

type ring struct {
	buf   []domain.Message
	start int
	count int
}

func NewMemoryLog(capacity int) *MemoryLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryLog{
		capacity: capacity,
		channels: make(map[string]*ring),
	}
}

func (l *MemoryLog) Append(_ context.Context, channel string, msg domain.Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	r, ok := l.channels[channel]
	if !ok {
		r = &ring{buf: make([]domain.Message, l.capacity)}
		l.channels[channel] = r
	}

	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = msg
		r.count++
		return nil
	}

	// Full: overwrite the oldest slot and advance.
	r.buf[r.start] = msg
	r.start = (r.start + 1) % len(r.buf)
	return nil
}

func (l *MemoryLog) Recent(_ context.Context, channel string) ([]domain.Message, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, ok := l.channels[channel]
	if !ok {
		return nil, nil
	}

	out := make([]domain.Message, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out, nil
}

var _ Log = (*MemoryLog)(nil)
