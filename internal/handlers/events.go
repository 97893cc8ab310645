package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gigflow/backend/internal/middleware"
	"github.com/gigflow/backend/internal/services"
	"github.com/gigflow/backend/internal/utils"
	"github.com/gigflow/backend/pkg/logger"
	"github.com/gigflow/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventsHandler streams hired notifications to connected users over SSE.
type EventsHandler struct {
	hub *services.NotifyHub
}

func NewEventsHandler(hub *services.NotifyHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// streamToken resolves the session token for an SSE request. EventSource
// cannot set headers, so a token query parameter is accepted alongside the
// session cookie and Authorization header.
func streamToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// Stream holds the connection open and forwards hired events to the user.
// GET /api/events
func (h *EventsHandler) Stream(c *gin.Context) {
	token := streamToken(c)
	if token == "" {
		response.Unauthorized(c, "authentication required")
		return
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// Connection id distinguishes reconnects from the same user in logs
	connID := uuid.New().String()

	events := h.hub.Register(claims.UserID)
	defer h.hub.Unregister(claims.UserID, events)

	logger.Info().
		Str("conn_id", connID).
		Uint("user_id", claims.UserID).
		Int("connected", h.hub.ClientCount()).
		Msg("events client connected")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				// Replaced by a newer connection for the same user
				return false
			}
			data, err := json.Marshal(event)
			if err != nil {
				logger.Error().Err(err).Msg("events marshal error")
				return true
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			c.Writer.Flush()
			return true
		case <-c.Request.Context().Done():
			logger.Info().Str("conn_id", connID).Uint("user_id", claims.UserID).Msg("events client disconnected")
			return false
		}
	})
}
