package entities

import (
	"time"

	"github.com/google/uuid"
)

// JourneyEventType represents the type of journey event
type JourneyEventType string

const (
	JourneyEventTypeStageChanged     JourneyEventType = "stage_changed"
	JourneyEventTypeReset            JourneyEventType = "journey_reset"
	JourneyEventTypeBookingCreated   JourneyEventType = "booking_created"
	JourneyEventTypePaymentCompleted JourneyEventType = "payment_completed"
)

// JourneyEvent represents a change notification for a journey
type JourneyEvent struct {
	ID        string                 `json:"id"`
	JourneyID string                 `json:"journey_id"`
	EventType JourneyEventType       `json:"event_type"`
	StepIndex int                    `json:"step_index"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// NewJourneyEvent creates a new journey event
func NewJourneyEvent(journeyID string, eventType JourneyEventType, stepIndex int, payload map[string]interface{}) *JourneyEvent {
	return &JourneyEvent{
		ID:        uuid.New().String(),
		JourneyID: journeyID,
		EventType: eventType,
		StepIndex: stepIndex,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
