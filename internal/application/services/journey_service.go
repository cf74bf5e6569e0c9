package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/surgicalbooking/internal/application/pricing"
	"github.com/zatekoja/surgicalbooking/internal/application/workflow"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// maxSaveAttempts bounds re-application of a command after a version conflict
const maxSaveAttempts = 3

// JourneyService drives journeys through the step controller and serves the
// candidate lists each stage needs.
type JourneyService struct {
	repo       repositories.JourneyRepository
	catalog    *CatalogService
	surgeons   *SurgeonSelectionService
	implants   *ImplantRecommendationService
	facilities *FacilityPreviewService
	identity   *IdentityService
	calculator *pricing.Calculator
	scopes     *workflow.Scopes
	eventBus   providers.EventBus
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewJourneyService creates a new journey service
func NewJourneyService(
	repo repositories.JourneyRepository,
	catalog *CatalogService,
	identity *IdentityService,
	calculator *pricing.Calculator,
) *JourneyService {
	return &JourneyService{
		repo:       repo,
		catalog:    catalog,
		surgeons:   NewSurgeonSelectionService(),
		implants:   NewImplantRecommendationService(),
		facilities: NewFacilityPreviewService(calculator),
		identity:   identity,
		calculator: calculator,
		scopes:     workflow.NewScopes(),
		now:        time.Now,
	}
}

// SetEventBus sets the event bus used to publish journey events
func (s *JourneyService) SetEventBus(eventBus providers.EventBus) {
	s.eventBus = eventBus
}

// SetScopeIdleTTL bounds how long an untouched journey's stage scope is kept
func (s *JourneyService) SetScopeIdleTTL(ttl time.Duration) {
	s.scopes.SetIdleTTL(ttl)
}

// SetMetrics sets the metrics used to count transitions
func (s *JourneyService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Calculator returns the shared pricing calculator
func (s *JourneyService) Calculator() *pricing.Calculator {
	return s.calculator
}

// Start creates a journey. A resume signal seeds it past the stages the
// signal says were already completed; otherwise it starts at IDENTITY.
func (s *JourneyService) Start(ctx context.Context, sig *entities.ResumeSignal) (*entities.Journey, error) {
	state := workflow.NewState()
	if sig != nil {
		resumed, err := workflow.Resume(*sig)
		if err != nil {
			return nil, err
		}
		state = resumed
	}

	now := s.now()
	journey := &entities.Journey{
		ID:        uuid.New().String(),
		State:     state,
		Checkout:  entities.Checkout{Phase: entities.CheckoutPhaseReview},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, journey); err != nil {
		return nil, err
	}

	stage := entities.Stage(state.StepIndex)
	s.scopes.Enter(journey.ID, stage)

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("journey_id", journey.ID).
		Str("stage", stage.String()).
		Bool("resumed", sig != nil).
		Msg("Journey started")

	command := "START"
	if sig != nil {
		command = "RESUME"
	}
	observability.RecordTransition(ctx, s.metrics, command, stage.String())
	s.publish(ctx, journey, entities.JourneyEventTypeStageChanged, map[string]interface{}{
		"command": command,
		"to":      stage.String(),
	})
	return journey, nil
}

// Get returns a journey by ID
func (s *JourneyService) Get(ctx context.Context, id string) (*entities.Journey, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("journey id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Dispatch applies a step controller command to the journey. The returned
// bool is false when the command was recognized as a duplicate.
func (s *JourneyService) Dispatch(ctx context.Context, id string, cmd workflow.Command) (*entities.Journey, bool, error) {
	var (
		applied bool
		from    int
	)
	journey, err := s.mutate(ctx, id, func(j *entities.Journey) (bool, error) {
		from = j.State.StepIndex
		res, err := workflow.Apply(j.State, cmd)
		if err != nil {
			return false, err
		}
		applied = res.Applied
		if !res.Applied {
			return false, nil
		}
		j.State = res.State
		if _, ok := cmd.(workflow.Reset); ok {
			j.Checkout = entities.Checkout{Phase: entities.CheckoutPhaseReview}
		}
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}
	if !applied {
		observability.LoggerFromContext(ctx).Debug().
			Str("journey_id", id).
			Str("command", cmd.Name()).
			Msg("Duplicate command ignored")
		return journey, false, nil
	}

	to := entities.Stage(journey.State.StepIndex)
	observability.RecordTransition(ctx, s.metrics, cmd.Name(), to.String())

	eventType := entities.JourneyEventTypeStageChanged
	if _, ok := cmd.(workflow.Reset); ok {
		eventType = entities.JourneyEventTypeReset
	}
	s.publish(ctx, journey, eventType, map[string]interface{}{
		"command": cmd.Name(),
		"from":    entities.Stage(from).String(),
		"to":      to.String(),
	})
	return journey, true, nil
}

// Advance merges the stage's contribution and moves to the next stage.
// Catalog selections are resolved by ID so the stored records, and the
// prices derived from them, are the catalog's.
func (s *JourneyService) Advance(ctx context.Context, id, actionID string, contribution entities.Contribution) (*entities.Journey, bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if alreadyApplied(current, actionID) {
		return current, false, nil
	}

	resolved, err := s.catalog.Resolve(ctx, current.State.Context, contribution)
	if err != nil {
		return nil, false, err
	}
	return s.Dispatch(ctx, id, workflow.Advance{ActionID: actionID, Contribution: resolved})
}

// SkipQualifying jumps straight to the qualifying questionnaire
func (s *JourneyService) SkipQualifying(ctx context.Context, id, actionID string) (*entities.Journey, bool, error) {
	return s.Dispatch(ctx, id, workflow.SkipQualifying(actionID))
}

// Reset discards the journey's context and returns it to IDENTITY
func (s *JourneyService) Reset(ctx context.Context, id string) (*entities.Journey, error) {
	journey, _, err := s.Dispatch(ctx, id, workflow.Reset{})
	return journey, err
}

// RegisterIdentity creates the patient identity and advances past IDENTITY
func (s *JourneyService) RegisterIdentity(ctx context.Context, id, actionID string, form entities.IdentityForm) (*entities.Journey, *entities.Identity, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if alreadyApplied(current, actionID) {
		return current, nil, nil
	}
	if err := checkStage(current, entities.StageIdentity); err != nil {
		return nil, nil, err
	}

	identity, err := s.identity.Register(ctx, form)
	if err != nil {
		return nil, nil, err
	}
	if identity.Placeholder {
		observability.RecordDegraded(ctx, s.metrics, "identity")
	}

	journey, _, err := s.Advance(ctx, id, actionID, entities.Contribution{
		PatientID:   identity.PatientID,
		PatientData: identity.PatientData,
	})
	if err != nil {
		return nil, nil, err
	}
	return journey, identity, nil
}

// Procedures returns the surgery catalog for the PROCEDURE stage
func (s *JourneyService) Procedures(ctx context.Context, id string) (CatalogResult[entities.Surgery], error) {
	if _, err := s.requireStage(ctx, id, entities.StageProcedure); err != nil {
		return CatalogResult[entities.Surgery]{}, err
	}

	result, err := workflow.Run(ctx, s.scopes, id, entities.StageProcedure, s.catalog.Procedures)
	if err != nil {
		return CatalogResult[entities.Surgery]{}, err
	}
	if result.Degraded {
		observability.RecordDegraded(ctx, s.metrics, "procedure_catalog")
	}
	return result, nil
}

// Surgeons returns the filtered and ranked surgeons for the PROVIDER stage
func (s *JourneyService) Surgeons(ctx context.Context, id string, filter SurgeonFilter) ([]entities.Surgeon, error) {
	if _, err := s.requireStage(ctx, id, entities.StageProvider); err != nil {
		return nil, err
	}

	candidates, err := workflow.Run(ctx, s.scopes, id, entities.StageProvider, s.catalog.Surgeons)
	if err != nil {
		return nil, err
	}
	return s.surgeons.Select(candidates, filter), nil
}

// Implants returns the ADDON stage options for the chosen selection method
func (s *JourneyService) Implants(ctx context.Context, id string, method ImplantMethod) (*ImplantOptions, error) {
	journey, err := s.requireStage(ctx, id, entities.StageAddon)
	if err != nil {
		return nil, err
	}

	if method == ImplantMethodDeferred {
		return &ImplantOptions{Method: method, Catalog: []entities.Implant{}, Recommended: entities.SurgeonChoiceImplant()}, nil
	}

	bc := journey.State.Context
	if bc.Surgery == nil {
		return nil, apperrors.NewValidationError("surgery must be chosen before implants")
	}

	catalog, err := workflow.Run(ctx, s.scopes, id, entities.StageAddon, func(ctx context.Context) (CatalogResult[entities.Implant], error) {
		return s.catalog.Implants(ctx, bc.Surgery.Category)
	})
	if err != nil {
		return nil, err
	}
	if catalog.Degraded {
		observability.RecordDegraded(ctx, s.metrics, "implant_catalog")
	}

	options := &ImplantOptions{Method: method, Catalog: catalog.Items, Degraded: catalog.Degraded}
	if method != ImplantMethodRecommended {
		return options, nil
	}

	if bc.EssentialInfo == nil {
		return nil, apperrors.NewValidationError("essential_info is required for a recommendation")
	}
	recommended, err := s.implants.Recommend(bc.EssentialInfo.AgeBracket, catalog.Items)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return nil, err
		}
		observability.LoggerFromContext(ctx).Warn().
			Str("journey_id", id).
			Str("age_bracket", string(bc.EssentialInfo.AgeBracket)).
			Msg("No implant of the recommended tier in catalog")
		return options, nil
	}
	options.Recommended = recommended
	return options, nil
}

// DeferImplant records the surgeon's-choice sentinel and advances past ADDON
func (s *JourneyService) DeferImplant(ctx context.Context, id, actionID string) (*entities.Journey, bool, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if alreadyApplied(current, actionID) {
		return current, false, nil
	}
	if err := checkStage(current, entities.StageAddon); err != nil {
		return nil, false, err
	}
	return s.Advance(ctx, id, actionID, entities.Contribution{Implant: entities.SurgeonChoiceImplant()})
}

// Hospitals returns hospitals grouped by zone with a price preview each
func (s *JourneyService) Hospitals(ctx context.Context, id string) ([]ZoneGroup, error) {
	journey, err := s.requireStage(ctx, id, entities.StageFacility)
	if err != nil {
		return nil, err
	}

	hospitals, err := workflow.Run(ctx, s.scopes, id, entities.StageFacility, s.catalog.Hospitals)
	if err != nil {
		return nil, err
	}
	return s.facilities.Preview(journey.State.Context.Implant, hospitals)
}

// Quote prices the journey's current selection
func (s *JourneyService) Quote(ctx context.Context, id string) (pricing.Breakdown, error) {
	journey, err := s.Get(ctx, id)
	if err != nil {
		return pricing.Breakdown{}, err
	}
	return s.calculator.Quote(journey.State.Context)
}

// requireStage loads the journey and checks it is at the given stage
func (s *JourneyService) requireStage(ctx context.Context, id string, stage entities.Stage) (*entities.Journey, error) {
	journey, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkStage(journey, stage); err != nil {
		return nil, err
	}
	return journey, nil
}

func checkStage(journey *entities.Journey, stage entities.Stage) error {
	current, err := workflow.CurrentStage(journey.State)
	if err != nil {
		return err
	}
	if current != stage {
		return apperrors.NewConflictError(fmt.Sprintf("journey is at %s, not %s", current, stage))
	}
	return nil
}

func alreadyApplied(journey *entities.Journey, actionID string) bool {
	return actionID != "" && slices.Contains(journey.State.AppliedActions, actionID)
}

// mutate loads the journey, lets fn change it and saves it under the
// repository's version check. A version conflict reloads and re-runs fn.
func (s *JourneyService) mutate(ctx context.Context, id string, fn func(j *entities.Journey) (bool, error)) (*entities.Journey, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		journey, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		from := journey.State.StepIndex

		changed, err := fn(journey)
		if err != nil {
			return nil, err
		}
		if !changed {
			return journey, nil
		}

		journey.UpdatedAt = s.now()
		err = s.repo.Save(ctx, journey)
		if err == nil {
			if journey.State.StepIndex != from {
				s.scopes.Enter(id, entities.Stage(journey.State.StepIndex))
			}
			return journey, nil
		}
		if !apperrors.Is(err, apperrors.ErrorTypeConflict) {
			return nil, err
		}
		lastErr = err
		observability.LoggerFromContext(ctx).Debug().
			Str("journey_id", id).
			Int("attempt", attempt).
			Msg("Journey version conflict, retrying")
	}
	return nil, lastErr
}

// publish sends a journey event to the journey's channel and the global
// updates channel. Failures are logged and otherwise ignored.
func (s *JourneyService) publish(ctx context.Context, journey *entities.Journey, eventType entities.JourneyEventType, payload map[string]interface{}) {
	if s.eventBus == nil {
		return
	}

	event := entities.NewJourneyEvent(journey.ID, eventType, journey.State.StepIndex, payload)
	for _, channel := range []string{providers.GetJourneyChannel(journey.ID), providers.EventChannelJourneyUpdates} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("journey_id", journey.ID).
				Str("channel", channel).
				Msg("Failed to publish journey event")
		}
	}
}
