package domain

import "time"

// Message is one relayed chat message. Immutable once created; retained only
// while inside its channel's history window.
type Message struct {
	Channel string    `json:"channel"`
	User    string    `json:"user"`
	Text    string    `json:"text"`
	SentAt  time.Time `json:"sent_at"`
}

// WebSocket event types from client.
const (
	EventTypeJoin   = "join"
	EventTypeSend   = "send"
	EventTypeTyping = "typing"
)

// WebSocket event types to client.
const (
	EventTypeHistory = "history"
	EventTypeMessage = "message"
	EventTypeError   = "error"
)

// Error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
)

// BaseEvent is the envelope shared by all WebSocket events.
type BaseEvent struct {
	Type string `json:"type"`
}

// Client -> Server events

type JoinEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	User    string `json:"user"`
}

type SendEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	User    string `json:"user"`
	Text    string `json:"text"`
}

type TypingEvent struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	User    string `json:"user"`
	Typing  bool   `json:"typing"`
}

// Server -> Client events

type HistoryEvent struct {
	Type     string       `json:"type"`
	Channel  string       `json:"channel"`
	Messages []MessageOut `json:"messages"`
}

type MessageOut struct {
	Type      string `json:"type,omitempty"`
	Channel   string `json:"channel"`
	User      string `json:"user"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type ErrorEvent struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorEvent(code, message string) *ErrorEvent {
	return &ErrorEvent{
		Type:    EventTypeError,
		Code:    code,
		Message: message,
	}
}

// NewMessageOut converts a stored message into its wire representation.
// Timestamps travel as Unix milliseconds.
func NewMessageOut(m Message) MessageOut {
	return MessageOut{
		Type:      EventTypeMessage,
		Channel:   m.Channel,
		User:      m.User,
		Text:      m.Text,
		Timestamp: m.SentAt.UnixMilli(),
	}
}
