package providers

import (
	"context"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to journey events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.JourneyEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.JourneyEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelJourneyUpdates is the channel for all journey updates
	EventChannelJourneyUpdates = "journey:updates"

	// EventChannelJourneyPrefix is the prefix for journey-specific channels
	EventChannelJourneyPrefix = "journey:"
)

// GetJourneyChannel returns the channel name for a specific journey
func GetJourneyChannel(journeyID string) string {
	return EventChannelJourneyPrefix + journeyID
}
