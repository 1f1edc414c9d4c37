package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/planboard/capacity-backend-go/internal/handler/http/response"
	"github.com/planboard/capacity-backend-go/internal/pkg/jwt"
	"github.com/planboard/capacity-backend-go/internal/pkg/sse"
	"github.com/planboard/capacity-backend-go/internal/service/feed"
)

type FeedHandler interface {
	Refresh(w http.ResponseWriter, r *http.Request)
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type feedHandlerImpl struct {
	refresher  *feed.Refresher
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewFeedHandler(refresher *feed.Refresher, hub *sse.Hub, jwtService jwt.Service) FeedHandler {
	return &feedHandlerImpl{
		refresher:  refresher,
		hub:        hub,
		jwtService: jwtService,
	}
}

// getPlannerIDFromContext extracts planner_id from JWT context
func getPlannerIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if plannerID, ok := claims["planner_id"].(string); ok {
		return plannerID
	}
	return ""
}

// Refresh schedules a debounced feed reload. Bursts of calls coalesce
// into one reload; the response only acknowledges the request.
func (h *feedHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	h.refresher.Trigger()
	response.Accepted(w, "Refresh scheduled")
}

func (h *feedHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	plannerID := getPlannerIDFromContext(r)
	if plannerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(plannerID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream handles the SSE connection pushing feed and license events to
// the planning grid.
func (h *feedHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	plannerID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe()
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"planner_id\":\"%s\"}\n\n", plannerID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
