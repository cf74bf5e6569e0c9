package events

import (
	"context"
	"sync"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
)

// MemoryEventBus is an in-process EventBus used when Redis is not configured.
// Events only reach subscribers of the same process.
type MemoryEventBus struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *entities.JourneyEvent]struct{}
	closed      bool
}

// NewMemoryEventBus creates an in-process event bus
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{
		subscribers: make(map[string]map[chan *entities.JourneyEvent]struct{}),
	}
}

// Publish delivers the event to current subscribers without blocking
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, event *entities.JourneyEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
			observability.LoggerFromContext(ctx).Warn().Str("channel", channel).Str("event_id", event.ID).Msg("Subscriber channel full, skipping event")
		}
	}
	return nil
}

// Subscribe registers a subscriber until ctx is done
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.JourneyEvent, error) {
	eventChan := make(chan *entities.JourneyEvent, 100)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(eventChan)
		return eventChan, nil
	}
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.JourneyEvent]struct{})
	}
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(channel, eventChan)
	}()
	return eventChan, nil
}

func (b *MemoryEventBus) remove(channel string, eventChan chan *entities.JourneyEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, ok := b.subscribers[channel]
	if !ok {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}
	delete(subscribers, eventChan)
	close(eventChan)
	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
	}
}

// Close closes every subscriber channel
func (b *MemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	b.closed = true
	return nil
}
