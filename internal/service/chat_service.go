package service

import (
	"context"
	"strings"

	"github.com/Kazeyhaya/orkcord/internal/hub"
	"github.com/Kazeyhaya/orkcord/pkg/log"
)

// DefaultUser is the display name for connections that join without one.
const DefaultUser = "anonymous"

type chatService struct {
	hub *hub.Hub
}

func NewChatService(h *hub.Hub) ChatService {
	return &chatService{hub: h}
}

func (s *chatService) HandleJoin(ctx context.Context, c *hub.Client, channel, user string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		l := log.Ctx(ctx)
		l.Debug().Str(log.FieldConnID, c.ID).Msg("join dropped: empty channel")
		return
	}

	user = strings.TrimSpace(user)
	if user == "" {
		user = DefaultUser
	}

	c.Session.Attach(channel, user)
	s.hub.Join(ctx, c, channel)
}

func (s *chatService) HandleSend(ctx context.Context, c *hub.Client, channel, user, text string) {
	channel = strings.TrimSpace(channel)
	text = strings.TrimSpace(text)
	if channel == "" || text == "" {
		l := log.Ctx(ctx)
		l.Debug().Str(log.FieldConnID, c.ID).Msg("send dropped: empty channel or text")
		return
	}

	user = strings.TrimSpace(user)
	if user == "" {
		user = c.Session.User()
	}
	if user == "" {
		user = DefaultUser
	}

	s.hub.Publish(ctx, channel, user, text, c.ID)
}

func (s *chatService) HandleTyping(ctx context.Context, c *hub.Client, channel, user string, typing bool) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	user = strings.TrimSpace(user)
	if user == "" {
		user = c.Session.User()
	}
	if user == "" {
		user = DefaultUser
	}

	s.hub.BroadcastTyping(channel, user, typing)
}
