package repositories

import (
	"context"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// BookingRepository is the booking-creation collaborator
type BookingRepository interface {
	// Create stores the booking unless one with the same idempotency key
	// exists; either way the stored booking is returned.
	Create(ctx context.Context, booking *entities.BookingRecord) (*entities.BookingRecord, error)

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.BookingRecord, error)

	// UpdateStatus moves a booking to a new status
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) error
}
