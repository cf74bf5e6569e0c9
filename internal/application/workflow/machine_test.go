package workflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

func stageContributions() []entities.Contribution {
	return []entities.Contribution{
		{PatientID: "P1", PatientData: map[string]any{"name": "Asha"}},
		{EssentialInfo: &entities.EssentialInfo{AgeBracket: entities.AgeBracket45To59, InsuranceStatus: entities.InsuranceYes}},
		{Surgery: &entities.Surgery{ID: "tkr", Name: "Total Knee Replacement", Category: "knee"}},
		{Surgeon: &entities.Surgeon{ID: "s-1", Name: "Dr. Rao", ExperienceYears: 15, Rating: 4.8}},
		{Implant: &entities.Implant{ID: "imp-std", Cost: 150000, Tier: entities.ImplantTierStandard}},
		{Hospital: &entities.Hospital{ID: "h-1", Zone: entities.ZoneMid, BasePrice: 45000, ConsumablesCost: 15000}},
	}
}

func TestApply_AdvanceIncrementsAndKeepsKeys(t *testing.T) {
	state := NewState()

	for i, contribution := range stageContributions() {
		before := state
		res, err := Apply(state, Advance{ActionID: fmt.Sprintf("a-%d", i), Contribution: contribution})
		require.NoError(t, err)
		require.True(t, res.Applied)

		assert.Equal(t, before.StepIndex+1, res.State.StepIndex)
		for _, key := range before.Context.Keys() {
			assert.Contains(t, res.State.Context.Keys(), key)
		}
		// earlier values survive unless overwritten
		if before.Context.PatientID != "" {
			assert.Equal(t, before.Context.PatientID, res.State.Context.PatientID)
		}
		state = res.State
	}

	stage, err := CurrentStage(state)
	require.NoError(t, err)
	assert.Equal(t, entities.StageFinalize, stage)
	assert.Len(t, state.Context.Keys(), 7)
}

func TestApply_AdvanceOverwritesOnlyGivenKeys(t *testing.T) {
	state := entities.JourneyState{
		StepIndex: int(entities.StageIdentity),
		Context:   entities.BookingContext{PatientID: "old", PatientData: map[string]any{"a": 1}},
	}

	res, err := Apply(state, Advance{ActionID: "x", Contribution: entities.Contribution{PatientID: "new"}})
	require.NoError(t, err)

	assert.Equal(t, "new", res.State.Context.PatientID)
	assert.Equal(t, map[string]any{"a": 1}, res.State.Context.PatientData)
}

func TestApply_DuplicateAdvanceIsIgnored(t *testing.T) {
	cmd := Advance{ActionID: "click-1", Contribution: entities.Contribution{PatientID: "P1"}}

	first, err := Apply(NewState(), cmd)
	require.NoError(t, err)
	second, err := Apply(first.State, cmd)
	require.NoError(t, err)

	assert.False(t, second.Applied)
	assert.Equal(t, 1, second.State.StepIndex)
	assert.Equal(t, first.State, second.State)
}

func TestApply_ValidationBlocksAdvanceWithoutMutation(t *testing.T) {
	state := NewState()

	_, err := Apply(state, Advance{ActionID: "a", Contribution: entities.Contribution{}})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, 0, state.StepIndex)
	assert.Empty(t, state.Context.Keys())

	qualifying := entities.JourneyState{StepIndex: int(entities.StageQualifying), Context: entities.BookingContext{PatientID: "P1"}}
	_, err = Apply(qualifying, Advance{ActionID: "b", Contribution: entities.Contribution{
		EssentialInfo: &entities.EssentialInfo{AgeBracket: "12-17", InsuranceStatus: entities.InsuranceNo},
	}})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestApply_AdvanceFromFinalizeIsRejected(t *testing.T) {
	state := entities.JourneyState{StepIndex: int(entities.StageFinalize)}

	_, err := Apply(state, Advance{ActionID: "late", Contribution: entities.Contribution{PatientID: "P1"}})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeConflict))
}

func TestApply_JumpOnlyChangesIndexAndAddsKeys(t *testing.T) {
	state := entities.JourneyState{
		StepIndex: int(entities.StageProvider),
		Context: entities.BookingContext{
			PatientID: "P1",
			Surgery:   &entities.Surgery{ID: "tkr"},
		},
	}

	res, err := Apply(state, Jump{ActionID: "j", Target: entities.StageQualifying})
	require.NoError(t, err)
	assert.Equal(t, int(entities.StageQualifying), res.State.StepIndex)
	assert.Equal(t, state.Context, res.State.Context)

	enhanced := true
	res, err = Apply(res.State, Jump{ActionID: "j2", Target: entities.StageFacility, Contribution: &entities.Contribution{Enhanced: &enhanced}})
	require.NoError(t, err)
	assert.Equal(t, int(entities.StageFacility), res.State.StepIndex)
	assert.Equal(t, "P1", res.State.Context.PatientID)
	assert.Equal(t, "tkr", res.State.Context.Surgery.ID)
	require.NotNil(t, res.State.Context.Enhanced)
	assert.True(t, *res.State.Context.Enhanced)
}

func TestApply_JumpOutOfRangeFailsLoudly(t *testing.T) {
	_, err := Apply(NewState(), Jump{ActionID: "j", Target: entities.Stage(entities.StageCount)})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeStepOutOfRange))

	_, err = Apply(NewState(), Jump{ActionID: "j", Target: -1})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeStepOutOfRange))
}

func TestCurrentStage_OutOfRangeIsAnError(t *testing.T) {
	_, err := CurrentStage(entities.JourneyState{StepIndex: 9})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeStepOutOfRange))

	_, err = Apply(entities.JourneyState{StepIndex: 9}, Advance{ActionID: "a", Contribution: entities.Contribution{PatientID: "P1"}})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeStepOutOfRange))
}

func TestApply_ResetDiscardsContext(t *testing.T) {
	state := entities.JourneyState{
		StepIndex:      int(entities.StageFacility),
		Context:        entities.BookingContext{PatientID: "P1"},
		AppliedActions: []string{"a", "b"},
	}

	res, err := Apply(state, Reset{})
	require.NoError(t, err)
	assert.Equal(t, int(entities.StageIdentity), res.State.StepIndex)
	assert.Empty(t, res.State.Context.Keys())
	assert.Equal(t, []string{"a", "b"}, res.State.AppliedActions)
}

func TestApply_RetryFromBeforeResetIsIgnored(t *testing.T) {
	res, err := Apply(NewState(), Advance{ActionID: "identity-1", Contribution: entities.Contribution{PatientID: "P1"}})
	require.NoError(t, err)

	res, err = Apply(res.State, Reset{})
	require.NoError(t, err)

	retried, err := Apply(res.State, Advance{ActionID: "identity-1", Contribution: entities.Contribution{PatientID: "P1"}})
	require.NoError(t, err)
	assert.False(t, retried.Applied)
	assert.Equal(t, int(entities.StageIdentity), retried.State.StepIndex)
	assert.Empty(t, retried.State.Context.PatientID)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	state := entities.JourneyState{
		StepIndex: int(entities.StageQualifying),
		Context:   entities.BookingContext{PatientID: "P1", PatientData: map[string]any{"name": "Asha"}},
	}

	res, err := Apply(state, Advance{ActionID: "q", Contribution: entities.Contribution{
		EssentialInfo: &entities.EssentialInfo{AgeBracket: entities.AgeBracket18To29, InsuranceStatus: entities.InsuranceNo},
	}})
	require.NoError(t, err)

	res.State.Context.PatientData["name"] = "changed"
	assert.Equal(t, "Asha", state.Context.PatientData["name"])
	assert.Nil(t, state.Context.EssentialInfo)
	assert.Empty(t, state.AppliedActions)
}

func TestApply_RemembersBoundedActionHistory(t *testing.T) {
	state := NewState()
	for i := 0; i < maxRememberedActions+10; i++ {
		res, err := Apply(state, Jump{ActionID: fmt.Sprintf("j-%d", i), Target: entities.StageQualifying})
		require.NoError(t, err)
		state = res.State
	}
	assert.Len(t, state.AppliedActions, maxRememberedActions)
	assert.Equal(t, fmt.Sprintf("j-%d", maxRememberedActions+9), state.AppliedActions[len(state.AppliedActions)-1])
}

func TestApply_RejectsNilCommand(t *testing.T) {
	_, err := Apply(NewState(), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
