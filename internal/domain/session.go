package domain

import "sync"

// Session holds per-connection relay state: the display name announced at
// join time and the channel the connection is attached to. Written from the
// connection's read pump, read from the broadcast path.
type Session struct {
	mu      sync.RWMutex
	user    string
	channel string
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) Attach(channel, user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channel = channel
	s.user = user
}

func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Channel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channel
}

func (s *Session) Attached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.channel != ""
}
