package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/internal/service"
	"telemed/pkg/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// Client is one websocket subscriber to a consultation channel.
type Client struct {
	ConsultationID int64
	Identity       domain.Identity
	Conn           *websocket.Conn
	Send           chan []byte
	Hub            *Hub
}

// inboundFrame is what a connected client may push over the socket. Chat
// frames are routed through the message pipeline so they are persisted
// before anyone sees them.
type inboundFrame struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	IsPrivate bool   `json:"is_private"`
}

// Hub owns the per-consultation subscriber sets. A single Run loop consumes
// the register, unregister and publish channels, so every subscriber of a
// consultation sees its events in the order the hub accepted them.
type Hub struct {
	// Subscribers keyed by consultation.
	channels map[int64]map[*Client]struct{}

	publish    chan domain.Event
	register   chan *Client
	unregister chan *Client

	logger  *zap.Logger
	metrics *metrics.ChannelMetrics

	// messages handles inbound chat frames. Wired after construction
	// because the message service in turn publishes through the hub.
	messages service.MessageService

	mutex sync.RWMutex
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Origin allow-listing happens at the ingress layer.
		return true
	},
}

func NewHub(logger *zap.Logger, m *metrics.ChannelMetrics) *Hub {
	return &Hub{
		channels:   make(map[int64]map[*Client]struct{}),
		publish:    make(chan domain.Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
		metrics:    m,
	}
}

// SetMessageService wires the message pipeline for inbound chat frames.
// Must be called before Run.
func (h *Hub) SetMessageService(messages service.MessageService) {
	h.messages = messages
}

// Publish implements service.EventPublisher. Events are queued to the Run
// loop; fan-out order within a consultation matches queue order.
func (h *Hub) Publish(event domain.Event) {
	h.publish <- event
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			subscribers, ok := h.channels[client.ConsultationID]
			if !ok {
				subscribers = make(map[*Client]struct{})
				h.channels[client.ConsultationID] = subscribers
			}
			subscribers[client] = struct{}{}
			open := len(h.channels)
			h.mutex.Unlock()

			h.metrics.ClientConnected()
			h.metrics.SetOpenChannels(open)
			h.logger.Info("subscriber connected",
				zap.Int64("consultation_id", client.ConsultationID),
				zap.Int64("user_id", client.Identity.UserID),
				zap.String("role", string(client.Identity.Role)))

		case client := <-h.unregister:
			h.mutex.Lock()
			if subscribers, ok := h.channels[client.ConsultationID]; ok {
				if _, subscribed := subscribers[client]; subscribed {
					delete(subscribers, client)
					close(client.Send)
					if len(subscribers) == 0 {
						delete(h.channels, client.ConsultationID)
					}
					h.metrics.ClientDisconnected()
				}
			}
			open := len(h.channels)
			h.mutex.Unlock()

			h.metrics.SetOpenChannels(open)
			h.logger.Info("subscriber disconnected",
				zap.Int64("consultation_id", client.ConsultationID),
				zap.Int64("user_id", client.Identity.UserID))

		case event := <-h.publish:
			h.fanOut(event)
		}
	}
}

// fanOut delivers one event to every subscriber of its consultation.
// Private events skip subscribers whose role lacks the private-message
// capability. A subscriber with a full buffer loses the event rather than
// stalling the channel; the counter records it.
func (h *Hub) fanOut(event domain.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event",
			zap.String("event_type", string(event.Type)), zap.Error(err))
		return
	}

	h.mutex.RLock()
	subscribers := h.channels[event.ConsultationID]
	targets := make([]*Client, 0, len(subscribers))
	for client := range subscribers {
		if event.Private && !client.Identity.Role.CanSeePrivateMessages() {
			continue
		}
		targets = append(targets, client)
	}
	h.mutex.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- data:
			h.metrics.EventBroadcast(string(event.Type))
		default:
			h.metrics.EventDropped(string(event.Type))
			h.logger.Warn("dropping event for slow subscriber",
				zap.Int64("consultation_id", event.ConsultationID),
				zap.Int64("user_id", client.Identity.UserID),
				zap.String("event_type", string(event.Type)))
		}
	}
}

// SubscriberCount reports how many clients are attached to a consultation.
func (h *Hub) SubscriberCount(consultationID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.channels[consultationID])
}

// IsUserConnected reports whether the user has a live subscription to the
// consultation.
func (h *Hub) IsUserConnected(consultationID, userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for client := range h.channels[consultationID] {
		if client.Identity.UserID == userID {
			return true
		}
	}
	return false
}

// Attach upgrades the request and subscribes the authenticated caller to
// the consultation's channel. The caller's identity must already be
// verified by middleware.
func (h *Hub) Attach(c *gin.Context, identity domain.Identity, consultationID int64) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	client := &Client{
		ConsultationID: consultationID,
		Identity:       identity,
		Conn:           conn,
		Send:           make(chan []byte, sendBufferSize),
		Hub:            h,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump pumps inbound frames from the socket into the message pipeline.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("websocket read error",
					zap.Int64("user_id", c.Identity.UserID), zap.Error(err))
			}
			break
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.Hub.logger.Warn("malformed inbound frame",
				zap.Int64("user_id", c.Identity.UserID), zap.Error(err))
			continue
		}

		c.Hub.handleInbound(c, frame)
	}
}

// handleInbound routes a client frame. Chat frames go through the message
// service so the persisted order stays authoritative; the service publishes
// back through the hub, which is where subscribers (including the sender)
// see the message.
func (h *Hub) handleInbound(c *Client, frame inboundFrame) {
	switch frame.Type {
	case "chat_message":
		if h.messages == nil {
			return
		}
		dto := domain.CreateMessageDTO{
			Type:      domain.MessageTypeText,
			Content:   frame.Content,
			IsPrivate: frame.IsPrivate,
		}
		if _, err := h.messages.Send(context.Background(), c.Identity, c.ConsultationID, dto); err != nil {
			h.logger.Warn("rejected inbound chat frame",
				zap.Int64("consultation_id", c.ConsultationID),
				zap.Int64("user_id", c.Identity.UserID),
				zap.Error(err))
		} else {
			h.metrics.MessagePersisted()
		}
	default:
		h.logger.Warn("unknown inbound frame type",
			zap.String("type", frame.Type),
			zap.Int64("user_id", c.Identity.UserID))
	}
}

// writePump pumps queued events to the socket, one frame per event.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Error("failed to write to websocket",
					zap.Int64("user_id", c.Identity.UserID),
					zap.Error(err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
