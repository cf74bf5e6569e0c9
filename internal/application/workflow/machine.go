// Package workflow implements the journey step controller: an immutable-update
// state container driven by a closed set of commands.
package workflow

import (
	"fmt"
	"slices"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// maxRememberedActions bounds the action ids kept for duplicate detection
const maxRememberedActions = 64

// Result is the outcome of applying a command
type Result struct {
	State   entities.JourneyState
	Applied bool // false when the command was a duplicate and nothing changed
}

// NewState returns the initial state: IDENTITY with an empty context
func NewState() entities.JourneyState {
	return entities.JourneyState{StepIndex: int(entities.StageIdentity)}
}

// CurrentStage resolves the stage to render for the state's step index.
// An index outside the defined stages is an error, never a silent restart.
func CurrentStage(state entities.JourneyState) (entities.Stage, error) {
	stage := entities.Stage(state.StepIndex)
	if !stage.Valid() {
		return 0, apperrors.NewStepOutOfRangeError(state.StepIndex)
	}
	return stage, nil
}

// Apply returns the state that results from cmd. The input state is never modified.
func Apply(state entities.JourneyState, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case Advance:
		return applyAdvance(state, c)
	case Jump:
		return applyJump(state, c)
	case Reset:
		// The action history survives so retries from before the reset stay no-ops
		next := NewState()
		next.AppliedActions = slices.Clone(state.AppliedActions)
		return Result{State: next, Applied: true}, nil
	case nil:
		return Result{}, apperrors.NewValidationError("command is required")
	default:
		return Result{}, apperrors.NewValidationError(fmt.Sprintf("unsupported command %T", cmd))
	}
}

func applyAdvance(state entities.JourneyState, c Advance) (Result, error) {
	if seen(state, c.ActionID) {
		return Result{State: clone(state), Applied: false}, nil
	}

	stage, err := CurrentStage(state)
	if err != nil {
		return Result{}, err
	}

	merged := state.Context.Merge(c.Contribution)
	if err := validateStage(stage, merged); err != nil {
		return Result{}, err
	}

	next := entities.JourneyState{
		StepIndex:      state.StepIndex + 1,
		Context:        merged,
		AppliedActions: remember(state.AppliedActions, c.ActionID),
	}
	return Result{State: next, Applied: true}, nil
}

func applyJump(state entities.JourneyState, c Jump) (Result, error) {
	if seen(state, c.ActionID) {
		return Result{State: clone(state), Applied: false}, nil
	}

	if !c.Target.Valid() {
		return Result{}, apperrors.NewStepOutOfRangeError(int(c.Target))
	}

	merged := state.Context.Clone()
	if c.Contribution != nil {
		merged = merged.Merge(*c.Contribution)
	}

	next := entities.JourneyState{
		StepIndex:      int(c.Target),
		Context:        merged,
		AppliedActions: remember(state.AppliedActions, c.ActionID),
	}
	return Result{State: next, Applied: true}, nil
}

func seen(state entities.JourneyState, actionID string) bool {
	return actionID != "" && slices.Contains(state.AppliedActions, actionID)
}

func remember(actions []string, actionID string) []string {
	out := slices.Clone(actions)
	if actionID == "" {
		return out
	}
	out = append(out, actionID)
	if len(out) > maxRememberedActions {
		out = out[len(out)-maxRememberedActions:]
	}
	return out
}

func clone(state entities.JourneyState) entities.JourneyState {
	return entities.JourneyState{
		StepIndex:      state.StepIndex,
		Context:        state.Context.Clone(),
		AppliedActions: slices.Clone(state.AppliedActions),
	}
}
