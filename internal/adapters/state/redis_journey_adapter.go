package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	redisclient "github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/redis"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

const journeyKeyPrefix = "journey:state:"

// RedisJourneyAdapter stores journeys as JSON documents in Redis. Saves use
// WATCH/MULTI so a write based on a stale version is rejected.
type RedisJourneyAdapter struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisJourneyAdapter creates a Redis journey store. Journeys expire after
// ttl without writes; a zero ttl keeps them forever.
func NewRedisJourneyAdapter(client *redisclient.Client, ttl time.Duration) repositories.JourneyRepository {
	return &RedisJourneyAdapter{
		client: client,
		ttl:    ttl,
	}
}

func journeyKey(id string) string {
	return journeyKeyPrefix + id
}

// Create stores a new journey at version 1
func (a *RedisJourneyAdapter) Create(ctx context.Context, journey *entities.Journey) error {
	journey.Version = 1
	data, err := json.Marshal(journey)
	if err != nil {
		return apperrors.NewInternalError("failed to encode journey", err)
	}

	ok, err := a.client.Client().SetNX(ctx, journeyKey(journey.ID), data, a.ttl).Result()
	if err != nil {
		return apperrors.NewInternalError("failed to create journey", err)
	}
	if !ok {
		return apperrors.NewConflictError(fmt.Sprintf("journey %s already exists", journey.ID))
	}
	return nil
}

// GetByID retrieves a journey by ID
func (a *RedisJourneyAdapter) GetByID(ctx context.Context, id string) (*entities.Journey, error) {
	data, err := a.client.Client().Get(ctx, journeyKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("journey with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get journey", err)
	}

	journey := &entities.Journey{}
	if err := json.Unmarshal(data, journey); err != nil {
		return nil, apperrors.NewInternalError("failed to decode journey", err)
	}
	return journey, nil
}

// Save writes the journey if the stored version matches, then bumps the version
func (a *RedisJourneyAdapter) Save(ctx context.Context, journey *entities.Journey) error {
	key := journeyKey(journey.ID)
	expected := journey.Version

	next := *journey
	next.Version = expected + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return apperrors.NewInternalError("failed to encode journey", err)
	}

	err = a.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperrors.NewNotFoundError(fmt.Sprintf("journey with id %s not found", journey.ID))
		}
		if err != nil {
			return err
		}

		var stored struct {
			Version int64 `json:"version"`
		}
		if err := json.Unmarshal(raw, &stored); err != nil {
			return err
		}
		if stored.Version != expected {
			return apperrors.NewConflictError(fmt.Sprintf("journey %s was modified concurrently", journey.ID))
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, a.ttl)
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		journey.Version = next.Version
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return apperrors.NewConflictError(fmt.Sprintf("journey %s was modified concurrently", journey.ID))
	case apperrors.TypeOf(err) != "":
		return err
	default:
		return apperrors.NewInternalError("failed to save journey", err)
	}
}

// Delete removes a journey
func (a *RedisJourneyAdapter) Delete(ctx context.Context, id string) error {
	if err := a.client.Client().Del(ctx, journeyKey(id)).Err(); err != nil {
		return apperrors.NewInternalError("failed to delete journey", err)
	}
	return nil
}
