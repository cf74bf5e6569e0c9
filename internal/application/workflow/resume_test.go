package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

func TestResume_JumpsPastIdentity(t *testing.T) {
	state, err := Resume(entities.ResumeSignal{Step: 3, PatientID: "P1"})
	require.NoError(t, err)

	assert.Equal(t, 2, state.StepIndex)
	assert.Equal(t, "P1", state.Context.PatientID)

	stage, err := CurrentStage(state)
	require.NoError(t, err)
	assert.Equal(t, entities.StageProcedure, stage)
}

func TestResume_CarriesPatientDataAndEnhancedFlag(t *testing.T) {
	state, err := Resume(entities.ResumeSignal{
		Step:        2,
		PatientID:   "P9",
		PatientData: map[string]any{"full_name": "Ravi"},
		Enhanced:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, int(entities.StageQualifying), state.StepIndex)
	assert.Equal(t, "Ravi", state.Context.PatientData["full_name"])
	require.NotNil(t, state.Context.Enhanced)
	assert.True(t, *state.Context.Enhanced)
}

func TestValidateResumeSignal(t *testing.T) {
	cases := map[string]entities.ResumeSignal{
		"zero step":     {Step: 0, PatientID: "P1"},
		"past finalize": {Step: 8, PatientID: "P1"},
		"no patient":    {Step: 2},
		"blank patient": {Step: 2, PatientID: "   "},
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateResumeSignal(sig)
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestDecodeResumeSignal(t *testing.T) {
	sig, err := DecodeResumeSignal(strings.NewReader(`{"step":3,"patient_id":"P1","enhanced":true}`))
	require.NoError(t, err)
	assert.Equal(t, entities.ResumeSignal{Step: 3, PatientID: "P1", Enhanced: true}, sig)

	_, err = DecodeResumeSignal(strings.NewReader(`{"step":3,"patient_id":"P1","admin":true}`))
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	_, err = DecodeResumeSignal(strings.NewReader(`{"step":"three"}`))
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
