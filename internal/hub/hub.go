package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/history"
	"github.com/Kazeyhaya/orkcord/pkg/log"
)

// Hub owns channel membership and the broadcast path. A connection subscribes
// to at most one channel; joining another implicitly leaves the previous one.
//
// All membership changes and publishes go through one mutex, which makes
// Publish the single serialization point per channel: broadcast order equals
// history append order, and a join's replay-then-subscribe is atomic with
// respect to concurrent publishes.
type Hub struct {
	mu       sync.Mutex
	log      history.Log
	channels map[string]map[string]*Client // channel -> clientID -> client
	byClient map[string]string             // clientID -> channel
	clocks   map[string]time.Time          // channel -> last assigned timestamp
	now      func() time.Time
}

func NewHub(hist history.Log) *Hub {
	return &Hub{
		log:      hist,
		channels: make(map[string]map[string]*Client),
		byClient: make(map[string]string),
		clocks:   make(map[string]time.Time),
		now:      time.Now,
	}
}

// Join subscribes client to channel, delivering the channel's retained history
// to it first. Re-joining the current channel is a no-op; joining a different
// channel leaves the old one. The replay is enqueued before membership is
// inserted, so no message published after the join can reach the client ahead
// of the replay, and none published before it is missing from the replay.
func (h *Hub) Join(ctx context.Context, client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.byClient[client.ID]; ok {
		if prev == channel {
			return
		}
		h.removeLocked(client, prev)
	}

	msgs, err := h.log.Recent(ctx, channel)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldChannel, channel).Msg("history replay unavailable")
		msgs = nil
	}

	replay := domain.HistoryEvent{
		Type:     domain.EventTypeHistory,
		Channel:  channel,
		Messages: make([]domain.MessageOut, 0, len(msgs)),
	}
	for _, m := range msgs {
		out := domain.NewMessageOut(m)
		out.Type = ""
		replay.Messages = append(replay.Messages, out)
	}
	if data, err := json.Marshal(replay); err == nil {
		client.enqueue(data)
	}

	members, ok := h.channels[channel]
	if !ok {
		members = make(map[string]*Client)
		h.channels[channel] = members
	}
	members[client.ID] = client
	h.byClient[client.ID] = channel

	l := log.Ctx(ctx)
	l.Info().Str(log.FieldConnID, client.ID).Str(log.FieldChannel, channel).Msg("client joined channel")
}

// Leave removes the client from its current channel, if any.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if channel, ok := h.byClient[client.ID]; ok {
		h.removeLocked(client, channel)
	}
}

// Disconnect removes the client's subscription and closes its send queue.
// Cleanup completes before Disconnect returns, so no later publish will
// attempt delivery to this client.
func (h *Hub) Disconnect(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if channel, ok := h.byClient[client.ID]; ok {
		h.removeLocked(client, channel)
	}
	client.close()
}

// Publish stamps msg with a per-channel monotonically non-decreasing server
// timestamp, appends it to the history log, and fans it out to every current
// subscriber except exclude. Delivery is best-effort: a subscriber whose send
// buffer is full is evicted, never retried. A history append failure is logged
// and fan-out continues, so messaging stays available when the backing store
// is down.
func (h *Hub) Publish(ctx context.Context, channel, user, text, exclude string) domain.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	ts := h.now()
	if last, ok := h.clocks[channel]; ok && ts.Before(last) {
		ts = last
	}
	h.clocks[channel] = ts

	msg := domain.Message{
		Channel: channel,
		User:    user,
		Text:    text,
		SentAt:  ts,
	}

	if err := h.log.Append(ctx, channel, msg); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldChannel, channel).Msg("history append failed")
	}

	data, err := json.Marshal(domain.NewMessageOut(msg))
	if err != nil {
		return msg
	}
	h.fanOutLocked(channel, data, exclude)
	return msg
}

// BroadcastTyping fans out an ephemeral typing signal to every subscriber of
// the channel, sender included. Nothing is written to history.
func (h *Hub) BroadcastTyping(channel, user string, typing bool) {
	data, err := json.Marshal(domain.TypingEvent{
		Type:    domain.EventTypeTyping,
		Channel: channel,
		User:    user,
		Typing:  typing,
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.fanOutLocked(channel, data, "")
}

// Subscribers returns the IDs of the channel's current members.
func (h *Hub) Subscribers(channel string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	members := h.channels[channel]
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

// Channel returns the channel the client is currently subscribed to.
func (h *Hub) Channel(client *Client) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel, ok := h.byClient[client.ID]
	return channel, ok
}

func (h *Hub) fanOutLocked(channel string, data []byte, exclude string) {
	for id, client := range h.channels[channel] {
		if id == exclude {
			continue
		}
		if !client.enqueue(data) {
			// Slow consumer: drop it rather than block the channel.
			l := log.L()
			l.Warn().Str(log.FieldConnID, id).Str(log.FieldChannel, channel).Msg("send buffer full, evicting client")
			h.removeLocked(client, channel)
			client.close()
		}
	}
}

func (h *Hub) removeLocked(client *Client, channel string) {
	if members, ok := h.channels[channel]; ok {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	delete(h.byClient, client.ID)
}
