package repositories

import (
	"context"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// JourneyRepository defines the interface for journey persistence
type JourneyRepository interface {
	// Create stores a new journey at version 1
	Create(ctx context.Context, journey *entities.Journey) error

	// GetByID retrieves a journey by ID
	GetByID(ctx context.Context, id string) (*entities.Journey, error)

	// Save writes the journey if the stored version still equals journey.Version,
	// then bumps journey.Version. A mismatch yields a CONFLICT error.
	Save(ctx context.Context, journey *entities.Journey) error

	// Delete removes a journey
	Delete(ctx context.Context, id string) error
}
