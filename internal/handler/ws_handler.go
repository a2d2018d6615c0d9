package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Kazeyhaya/orkcord/internal/config"
	"github.com/Kazeyhaya/orkcord/internal/domain"
	"github.com/Kazeyhaya/orkcord/internal/hub"
	"github.com/Kazeyhaya/orkcord/internal/service"
	"github.com/Kazeyhaya/orkcord/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades HTTP requests to websocket connections and routes
// inbound events into the relay.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.HandleWebSocket)
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		l := log.Ctx(c.Request.Context())
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	go client.WritePump()
	go client.ReadPump(h.handleEvent)
}

func (h *WSHandler) handleEvent(client *hub.Client, raw []byte) {
	ctx := log.WithLogger(context.Background(),
		log.L().With().Str(log.FieldConnID, client.ID).Logger())

	var base domain.BaseEvent
	if err := json.Unmarshal(raw, &base); err != nil {
		client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid event format"))
		return
	}

	switch base.Type {
	case domain.EventTypeJoin:
		var evt domain.JoinEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid join event"))
			return
		}
		h.service.HandleJoin(ctx, client, evt.Channel, evt.User)

	case domain.EventTypeSend:
		var evt domain.SendEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid send event"))
			return
		}
		h.service.HandleSend(ctx, client, evt.Channel, evt.User, evt.Text)

	case domain.EventTypeTyping:
		var evt domain.TypingEvent
		if err := json.Unmarshal(raw, &evt); err != nil {
			client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "invalid typing event"))
			return
		}
		h.service.HandleTyping(ctx, client, evt.Channel, evt.User, evt.Typing)

	default:
		client.SendEvent(domain.NewErrorEvent(domain.ErrCodeBadRequest, "unknown event type"))
	}
}
