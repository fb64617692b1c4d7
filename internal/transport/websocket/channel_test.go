package websocket

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telemed/internal/domain"
	"telemed/pkg/metrics"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zap.NewNop(), metrics.NewChannelMetrics(prometheus.NewRegistry()))
	go hub.Run()
	return hub
}

func newTestClient(hub *Hub, consultationID int64, identity domain.Identity, buffer int) *Client {
	client := &Client{
		ConsultationID: consultationID,
		Identity:       identity,
		Send:           make(chan []byte, buffer),
		Hub:            hub,
	}
	hub.register <- client
	return client
}

func recvEvent(t *testing.T, client *Client) domain.Event {
	t.Helper()
	select {
	case raw := <-client.Send:
		var event domain.Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return domain.Event{}
	}
}

func TestHubDeliversToChannelSubscribersOnly(t *testing.T) {
	hub := newTestHub(t)

	doctor := newTestClient(hub, 1, domain.Identity{UserID: 1, Role: domain.UserRoleDoctor}, 8)
	patient := newTestClient(hub, 1, domain.Identity{UserID: 2, Role: domain.UserRolePatient}, 8)
	other := newTestClient(hub, 2, domain.Identity{UserID: 3, Role: domain.UserRolePatient}, 8)

	hub.Publish(domain.NewEvent(domain.EventConsultationStarted, 1, nil))

	assert.Equal(t, domain.EventConsultationStarted, recvEvent(t, doctor).Type)
	assert.Equal(t, domain.EventConsultationStarted, recvEvent(t, patient).Type)

	select {
	case <-other.Send:
		t.Fatal("subscriber of another consultation received the event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubPreservesPublishOrder(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub, 1, domain.Identity{UserID: 2, Role: domain.UserRolePatient}, 64)

	const n = 20
	for i := 0; i < n; i++ {
		hub.Publish(domain.NewEvent(domain.EventChatMessage, 1, map[string]interface{}{"seq": i}))
	}

	for i := 0; i < n; i++ {
		event := recvEvent(t, client)
		payload, ok := event.Payload.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("%d", i), fmt.Sprintf("%.0f", payload["seq"]))
	}
}

func TestHubFiltersPrivateEvents(t *testing.T) {
	hub := newTestHub(t)

	doctor := newTestClient(hub, 1, domain.Identity{UserID: 1, Role: domain.UserRoleDoctor}, 8)
	patient := newTestClient(hub, 1, domain.Identity{UserID: 2, Role: domain.UserRolePatient}, 8)
	admin := newTestClient(hub, 1, domain.Identity{UserID: 3, Role: domain.UserRoleAdmin}, 8)

	private := domain.NewEvent(domain.EventChatMessage, 1, map[string]interface{}{"content": "clinician note"})
	private.Private = true
	hub.Publish(private)
	hub.Publish(domain.NewEvent(domain.EventConsultationStatus, 1, nil))

	assert.Equal(t, domain.EventChatMessage, recvEvent(t, doctor).Type)
	assert.Equal(t, domain.EventChatMessage, recvEvent(t, admin).Type)

	// The patient only ever sees the public event.
	assert.Equal(t, domain.EventConsultationStatus, recvEvent(t, patient).Type)
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	hub := newTestHub(t)

	slow := newTestClient(hub, 1, domain.Identity{UserID: 2, Role: domain.UserRolePatient}, 1)
	fast := newTestClient(hub, 1, domain.Identity{UserID: 1, Role: domain.UserRoleDoctor}, 8)

	// Nobody drains slow.Send, so everything past its one-slot buffer is
	// dropped while the fast subscriber keeps receiving.
	for i := 0; i < 3; i++ {
		hub.Publish(domain.NewEvent(domain.EventChatMessage, 1, map[string]interface{}{"seq": i}))
	}

	for i := 0; i < 3; i++ {
		recvEvent(t, fast)
	}
	assert.Len(t, slow.Send, 1)
}

func TestHubSubscriberAccounting(t *testing.T) {
	hub := newTestHub(t)

	client := newTestClient(hub, 1, domain.Identity{UserID: 2, Role: domain.UserRolePatient}, 8)
	// Publish acts as a barrier: once it is delivered the register has been
	// processed.
	hub.Publish(domain.NewEvent(domain.EventConsultationStatus, 1, nil))
	recvEvent(t, client)

	assert.Equal(t, 1, hub.SubscriberCount(1))
	assert.True(t, hub.IsUserConnected(1, 2))
	assert.False(t, hub.IsUserConnected(1, 99))

	hub.unregister <- client

	select {
	case _, open := <-client.Send:
		assert.False(t, open, "send channel closes on unregister")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for unregister")
	}
	assert.Equal(t, 0, hub.SubscriberCount(1))
}
