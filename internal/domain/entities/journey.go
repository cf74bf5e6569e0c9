package entities

import (
	"time"
)

// JourneyState is the step controller's state for one journey
type JourneyState struct {
	StepIndex      int            `json:"step_index"`
	Context        BookingContext `json:"context"`
	AppliedActions []string       `json:"applied_actions,omitempty"`
}

// Journey is the persisted aggregate for a single user's booking journey
type Journey struct {
	ID        string       `json:"id"`
	State     JourneyState `json:"state"`
	Checkout  Checkout     `json:"checkout"`
	Version   int64        `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
