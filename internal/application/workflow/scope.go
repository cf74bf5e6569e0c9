package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// DefaultIdleTTL is how long an untouched scope is kept before it is swept
const DefaultIdleTTL = 24 * time.Hour

// Scopes ties asynchronous work to the lifetime of a journey's current stage.
// Entering a different stage cancels the previous stage's context, so results
// that arrive afterwards can be recognized and dropped. Scopes idle for longer
// than the idle TTL are swept on a later Enter.
type Scopes struct {
	mu        sync.Mutex
	scopes    map[string]*stageScope
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type stageScope struct {
	stage    entities.Stage
	ctx      context.Context
	cancel   context.CancelFunc
	lastUsed time.Time
}

// NewScopes creates an empty scope registry
func NewScopes() *Scopes {
	return &Scopes{
		scopes:    make(map[string]*stageScope),
		idleTTL:   DefaultIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// SetIdleTTL sets how long an untouched scope survives. It should match the
// journey store's TTL so scopes never outlive their journeys.
func (s *Scopes) SetIdleTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idleTTL = ttl
}

// Len returns the number of live scopes
func (s *Scopes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scopes)
}

// Enter marks stage as the journey's live stage and returns its context.
// Re-entering the live stage returns the existing context.
func (s *Scopes) Enter(journeyID string, stage entities.Stage) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	if cur, ok := s.scopes[journeyID]; ok {
		if cur.stage == stage {
			cur.lastUsed = now
			return cur.ctx
		}
		cur.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.scopes[journeyID] = &stageScope{stage: stage, ctx: ctx, cancel: cancel, lastUsed: now}
	return ctx
}

// sweepLocked cancels and drops idle scopes, at most once per half TTL
func (s *Scopes) sweepLocked(now time.Time) {
	if s.idleTTL <= 0 || now.Sub(s.lastSweep) < s.idleTTL/2 {
		return
	}
	s.lastSweep = now
	for id, scope := range s.scopes {
		if now.Sub(scope.lastUsed) > s.idleTTL {
			scope.cancel()
			delete(s.scopes, id)
		}
	}
}

// Release tears down the journey's live scope
func (s *Scopes) Release(journeyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.scopes[journeyID]; ok {
		cur.cancel()
		delete(s.scopes, journeyID)
	}
}

// Run executes fn under a context cancelled either by the parent or by the
// stage being left. A result produced after the stage was left is discarded.
func Run[T any](parent context.Context, s *Scopes, journeyID string, stage entities.Stage, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	stageCtx := s.Enter(journeyID, stage)
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	stop := context.AfterFunc(stageCtx, cancel)
	defer stop()

	result, err := fn(ctx)
	if stageCtx.Err() != nil {
		return zero, apperrors.NewStaleError("stage " + stage.String() + " was left before the result arrived")
	}
	return result, err
}
