package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kazeyhaya/orkcord/internal/config"
	"github.com/Kazeyhaya/orkcord/internal/history"
)

func newTestHub() *Hub {
	return NewHub(history.NewMemoryLog(100))
}

func newTestClient(t *testing.T, h *Hub, id string) *Client {
	t.Helper()
	return NewClient(id, h, nil, config.WebSocketConfig{SendBuffer: 32})
}

// drain decodes every frame currently queued on the client.
func drain(t *testing.T, c *Client) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for {
		select {
		case data := <-c.Send:
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &decoded))
			out = append(out, decoded)
		default:
			return out
		}
	}
}

func TestJoin_ReplaysRetainedHistoryFirst(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	sender := newTestClient(t, h, "sender")
	h.Join(ctx, sender, "general")
	drain(t, sender)

	h.Publish(ctx, "general", "alice", "m1", sender.ID)
	h.Publish(ctx, "general", "alice", "m2", sender.ID)

	late := newTestClient(t, h, "late")
	h.Join(ctx, late, "general")

	frames := drain(t, late)
	require.Len(t, frames, 1)
	require.Equal(t, "history", frames[0]["type"])
	require.Equal(t, "general", frames[0]["channel"])

	msgs := frames[0]["messages"].([]interface{})
	require.Len(t, msgs, 2)
	require.Equal(t, "m1", msgs[0].(map[string]interface{})["text"])
	require.Equal(t, "m2", msgs[1].(map[string]interface{})["text"])
}

func TestJoin_ReplayThenLiveNoDuplicates(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	h.Publish(ctx, "general", "alice", "before-join", "")

	c := newTestClient(t, h, "c1")
	h.Join(ctx, c, "general")
	h.Publish(ctx, "general", "bob", "after-join", "")

	frames := drain(t, c)
	require.Len(t, frames, 2)

	require.Equal(t, "history", frames[0]["type"])
	replay := frames[0]["messages"].([]interface{})
	require.Len(t, replay, 1)
	require.Equal(t, "before-join", replay[0].(map[string]interface{})["text"])

	require.Equal(t, "message", frames[1]["type"])
	require.Equal(t, "after-join", frames[1]["text"])
}

func TestPublish_ExcludesSender(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	c1 := newTestClient(t, h, "client1")
	c2 := newTestClient(t, h, "client2")
	h.Join(ctx, c1, "general")
	h.Join(ctx, c2, "general")
	drain(t, c1)
	drain(t, c2)

	h.Publish(ctx, "general", "client1", "hello", c1.ID)

	require.Empty(t, drain(t, c1))

	frames := drain(t, c2)
	require.Len(t, frames, 1)
	require.Equal(t, "message", frames[0]["type"])
	require.Equal(t, "general", frames[0]["channel"])
	require.Equal(t, "client1", frames[0]["user"])
	require.Equal(t, "hello", frames[0]["text"])
	require.NotZero(t, frames[0]["timestamp"])
}

func TestJoin_IsIdempotent(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	c := newTestClient(t, h, "c1")
	h.Join(ctx, c, "general")
	h.Join(ctx, c, "general")

	require.Equal(t, []string{"c1"}, h.Subscribers("general"))

	// Re-joining the same channel must not replay history again.
	frames := drain(t, c)
	require.Len(t, frames, 1)
	require.Equal(t, "history", frames[0]["type"])
}

func TestJoin_DifferentChannelLeavesPrevious(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	c := newTestClient(t, h, "c1")
	h.Join(ctx, c, "general")
	h.Join(ctx, c, "random")

	require.Empty(t, h.Subscribers("general"))
	require.Equal(t, []string{"c1"}, h.Subscribers("random"))

	channel, ok := h.Channel(c)
	require.True(t, ok)
	require.Equal(t, "random", channel)
}

func TestDisconnect_RemovesMembershipSynchronously(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	c := newTestClient(t, h, "c1")
	h.Join(ctx, c, "general")
	h.Disconnect(c)

	require.Empty(t, h.Subscribers("general"))
	_, ok := h.Channel(c)
	require.False(t, ok)

	// Publishing afterwards must not panic or deliver to the gone client.
	h.Publish(ctx, "general", "alice", "after-disconnect", "")
}

func TestPublish_TimestampsNeverDecrease(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	// Simulate a clock that jumps backwards between publishes.
	times := []time.Time{
		time.Unix(100, 0),
		time.Unix(90, 0),
		time.Unix(110, 0),
	}
	i := 0
	h.now = func() time.Time {
		ts := times[i]
		i++
		return ts
	}

	m1 := h.Publish(ctx, "general", "alice", "m1", "")
	m2 := h.Publish(ctx, "general", "alice", "m2", "")
	m3 := h.Publish(ctx, "general", "alice", "m3", "")

	require.False(t, m2.SentAt.Before(m1.SentAt))
	require.False(t, m3.SentAt.Before(m2.SentAt))
}

func TestPublish_EvictsSlowConsumer(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	slow := NewClient("slow", h, nil, config.WebSocketConfig{SendBuffer: 1})
	h.Join(ctx, slow, "general")
	drain(t, slow)

	// First publish fills the buffer; the second finds it full.
	h.Publish(ctx, "general", "alice", "m1", "")
	h.Publish(ctx, "general", "alice", "m2", "")

	require.Empty(t, h.Subscribers("general"))
}

func TestBroadcastTyping_IncludesSenderAndSkipsHistory(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	c1 := newTestClient(t, h, "c1")
	c2 := newTestClient(t, h, "c2")
	h.Join(ctx, c1, "general")
	h.Join(ctx, c2, "general")
	drain(t, c1)
	drain(t, c2)

	h.BroadcastTyping("general", "alice", true)

	for _, c := range []*Client{c1, c2} {
		frames := drain(t, c)
		require.Len(t, frames, 1)
		require.Equal(t, "typing", frames[0]["type"])
		require.Equal(t, true, frames[0]["typing"])
	}

	// Typing signals must not appear in history.
	msgs, err := h.log.Recent(ctx, "general")
	require.NoError(t, err)
	require.Empty(t, msgs)
}

func TestPublish_OrderMatchesHistoryOrder(t *testing.T) {
	h := newTestHub()
	ctx := context.Background()

	c := newTestClient(t, h, "c1")
	h.Join(ctx, c, "general")
	drain(t, c)

	h.Publish(ctx, "general", "alice", "first", "")
	h.Publish(ctx, "general", "bob", "second", "")

	frames := drain(t, c)
	require.Len(t, frames, 2)
	require.Equal(t, "first", frames[0]["text"])
	require.Equal(t, "second", frames[1]["text"])

	msgs, err := h.log.Recent(ctx, "general")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "first", msgs[0].Text)
	require.Equal(t, "second", msgs[1].Text)
}
