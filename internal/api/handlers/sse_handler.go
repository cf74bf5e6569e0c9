package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
)

const defaultHeartbeatInterval = 30 * time.Second

// JourneyReader looks up a journey before a stream is opened
type JourneyReader interface {
	Get(ctx context.Context, id string) (*entities.Journey, error)
}

// SSEHandler handles Server-Sent Events for real-time journey updates
type SSEHandler struct {
	eventBus  providers.EventBus
	journeys  JourneyReader
	clients   map[string]map[chan *entities.JourneyEvent]bool // channel -> clients
	mu        sync.RWMutex
	heartbeat time.Duration
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus, journeys JourneyReader) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		journeys:  journeys,
		clients:   make(map[string]map[chan *entities.JourneyEvent]bool),
		heartbeat: defaultHeartbeatInterval,
	}
}

// SetHeartbeatInterval overrides the keep-alive interval
func (h *SSEHandler) SetHeartbeatInterval(d time.Duration) {
	if d > 0 {
		h.heartbeat = d
	}
}

// StreamJourneyUpdates handles SSE connections for a single journey
// GET /api/journeys/{id}/events
func (h *SSEHandler) StreamJourneyUpdates(w http.ResponseWriter, r *http.Request) {
	journeyID := r.PathValue("id")
	if journeyID == "" {
		respondWithError(w, http.StatusBadRequest, "journey ID is required")
		return
	}

	logger := observability.LoggerFromContext(r.Context())

	journey, err := h.journeys.Get(r.Context(), journeyID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := make(chan *entities.JourneyEvent, 10)
	channel := providers.GetJourneyChannel(journeyID)

	h.registerClient(channel, clientChan)
	defer h.unregisterClient(channel, clientChan)

	eventChan, err := h.eventBus.Subscribe(r.Context(), channel)
	if err != nil {
		logger.Error().Err(err).Str("channel", channel).Msg("Failed to subscribe to channel")
		return
	}

	h.sendEvent(w, "connected", map[string]interface{}{
		"journey_id": journeyID,
		"step_index": journey.State.StepIndex,
		"stage":      entities.Stage(journey.State.StepIndex).String(),
		"timestamp":  time.Now(),
	})
	flusher.Flush()

	go h.forwardEvents(r.Context(), eventChan, clientChan)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug().Str("journey_id", journeyID).Msg("Client disconnected from journey stream")
			return
		case <-ticker.C:
			h.sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-clientChan:
			if event == nil {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

// forwardEvents forwards events from the event bus to a client channel
func (h *SSEHandler) forwardEvents(ctx context.Context, eventChan <-chan *entities.JourneyEvent, clientChan chan<- *entities.JourneyEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			select {
			case clientChan <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

func (h *SSEHandler) registerClient(channel string, clientChan chan *entities.JourneyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[channel] == nil {
		h.clients[channel] = make(map[chan *entities.JourneyEvent]bool)
	}
	h.clients[channel][clientChan] = true
}

func (h *SSEHandler) unregisterClient(channel string, clientChan chan *entities.JourneyEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, exists := h.clients[channel]; exists {
		delete(clients, clientChan)
		if len(clients) == 0 {
			delete(h.clients, channel)
		}
	}
}

// sendEvent writes one SSE frame
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		observability.GetLogger().Error().Err(err).Str("event", eventType).Msg("Failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
