package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// MemoryJourneyAdapter keeps journeys in process memory. It is used when Redis
// is unavailable and in tests; it has the same versioning rules as the Redis store.
type MemoryJourneyAdapter struct {
	mu       sync.Mutex
	journeys map[string]memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	data      []byte
	version   int64
	expiresAt time.Time
}

// NewMemoryJourneyAdapter creates an in-memory journey store
func NewMemoryJourneyAdapter(ttl time.Duration) repositories.JourneyRepository {
	return &MemoryJourneyAdapter{
		journeys: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a new journey at version 1
func (a *MemoryJourneyAdapter) Create(ctx context.Context, journey *entities.Journey) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.lookup(journey.ID); ok {
		return apperrors.NewConflictError(fmt.Sprintf("journey %s already exists", journey.ID))
	}

	journey.Version = 1
	return a.store(journey)
}

// GetByID retrieves a journey by ID
func (a *MemoryJourneyAdapter) GetByID(ctx context.Context, id string) (*entities.Journey, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.lookup(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("journey with id %s not found", id))
	}

	journey := &entities.Journey{}
	if err := json.Unmarshal(entry.data, journey); err != nil {
		return nil, apperrors.NewInternalError("failed to decode journey", err)
	}
	return journey, nil
}

// Save writes the journey if the stored version matches, then bumps the version
func (a *MemoryJourneyAdapter) Save(ctx context.Context, journey *entities.Journey) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry, ok := a.lookup(journey.ID)
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("journey with id %s not found", journey.ID))
	}
	if entry.version != journey.Version {
		return apperrors.NewConflictError(fmt.Sprintf("journey %s was modified concurrently", journey.ID))
	}

	journey.Version++
	if err := a.store(journey); err != nil {
		journey.Version--
		return err
	}
	return nil
}

// Delete removes a journey
func (a *MemoryJourneyAdapter) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.journeys, id)
	return nil
}

// lookup returns the live entry for id, evicting it if expired. Callers hold mu.
func (a *MemoryJourneyAdapter) lookup(id string) (memoryEntry, bool) {
	entry, ok := a.journeys[id]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && a.now().After(entry.expiresAt) {
		delete(a.journeys, id)
		return memoryEntry{}, false
	}
	return entry, true
}

// store snapshots the journey so later caller mutations do not leak in. Callers hold mu.
func (a *MemoryJourneyAdapter) store(journey *entities.Journey) error {
	data, err := json.Marshal(journey)
	if err != nil {
		return apperrors.NewInternalError("failed to encode journey", err)
	}

	entry := memoryEntry{data: data, version: journey.Version}
	if a.ttl > 0 {
		entry.expiresAt = a.now().Add(a.ttl)
	}
	a.journeys[journey.ID] = entry
	return nil
}
