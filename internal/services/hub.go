package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/gigflow/backend/pkg/logger"
)

// HiredEvent is the notification delivered to a freelancer when a gig owner
// hires their bid.
type HiredEvent struct {
	Type      string    `json:"type"` // always "hired"
	Message   string    `json:"message"`
	GigID     uint      `json:"gigId"`
	GigTitle  string    `json:"gigTitle"`
	Timestamp time.Time `json:"timestamp"`
}

// NotifyHub tracks which users currently hold a live delivery channel.
// State lives only in process memory: it is populated when a user connects
// and dropped on disconnect or restart. Delivery is at-most-once with no
// queueing; events for users who are not connected are discarded.
type NotifyHub struct {
	clients map[uint]chan HiredEvent
	mu      sync.RWMutex
}

// NewNotifyHub creates a new notification hub instance.
func NewNotifyHub() *NotifyHub {
	return &NotifyHub{
		clients: make(map[uint]chan HiredEvent),
	}
}

// Register creates a delivery channel for the user and returns it.
// A user holds at most one channel; reconnecting replaces the old one.
func (h *NotifyHub) Register(userID uint) <-chan HiredEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.clients[userID]; ok {
		close(old)
	}

	// Buffered so a slow reader never blocks the sender
	ch := make(chan HiredEvent, 16)
	h.clients[userID] = ch
	return ch
}

// Unregister removes the user's delivery channel. The channel argument
// guards against a reconnect race: a newer registration is left untouched.
func (h *NotifyHub) Unregister(userID uint, ch <-chan HiredEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[userID]; ok && current == ch {
		close(current)
		delete(h.clients, userID)
	}
}

// Send delivers an event to the user if currently connected. Returns false
// when the user has no live channel or the channel buffer is full; the event
// is dropped either way.
func (h *NotifyHub) Send(userID uint, event HiredEvent) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.clients[userID]
	if !ok {
		return false
	}

	select {
	case ch <- event:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of connected users.
func (h *NotifyHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// NotifyHired builds and delivers the hired notification for a gig.
// Best effort: an undeliverable event is logged and dropped, never retried.
func (h *NotifyHub) NotifyHired(freelancerID uint, gigID uint, gigTitle string) {
	delivered := h.Send(freelancerID, HiredEvent{
		Type:      "hired",
		Message:   fmt.Sprintf("You have been hired for %q", gigTitle),
		GigID:     gigID,
		GigTitle:  gigTitle,
		Timestamp: time.Now(),
	})

	if delivered {
		logger.Info().Uint("user_id", freelancerID).Uint("gig_id", gigID).Msg("hired notification delivered")
	} else {
		logger.Warn().Uint("user_id", freelancerID).Uint("gig_id", gigID).Msg("hired notification dropped, user not connected")
	}
}

// Global notification hub instance
var globalNotifyHub *NotifyHub
var notifyHubOnce sync.Once

// GetNotifyHub returns the global notification hub singleton.
func GetNotifyHub() *NotifyHub {
	notifyHubOnce.Do(func() {
		globalNotifyHub = NewNotifyHub()
	})
	return globalNotifyHub
}
