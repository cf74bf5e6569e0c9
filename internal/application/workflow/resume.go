package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// DecodeResumeSignal strictly decodes a resume signal, rejecting unknown fields
func DecodeResumeSignal(r io.Reader) (entities.ResumeSignal, error) {
	var sig entities.ResumeSignal
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sig); err != nil {
		return entities.ResumeSignal{}, apperrors.NewValidationError(fmt.Sprintf("malformed resume signal: %v", err))
	}
	return sig, ValidateResumeSignal(sig)
}

// ParseResumeSignal decodes a resume signal from raw JSON
func ParseResumeSignal(raw json.RawMessage) (entities.ResumeSignal, error) {
	return DecodeResumeSignal(bytes.NewReader(raw))
}

// ValidateResumeSignal checks the handoff at the workflow boundary
func ValidateResumeSignal(sig entities.ResumeSignal) error {
	if sig.Step < 1 || sig.Step > entities.StageCount {
		return apperrors.NewValidationError(fmt.Sprintf("resume step must be between 1 and %d, got %d", entities.StageCount, sig.Step))
	}
	if strings.TrimSpace(sig.PatientID) == "" {
		return apperrors.NewValidationError("resume signal requires patient_id")
	}
	return nil
}

// ResumeCommand translates a validated resume signal into the seeding jump:
// JUMP(step-1) carrying the patient identity.
func ResumeCommand(sig entities.ResumeSignal) (Jump, error) {
	if err := ValidateResumeSignal(sig); err != nil {
		return Jump{}, err
	}

	enhanced := sig.Enhanced
	return Jump{
		ActionID: "resume:" + sig.PatientID,
		Target:   sig.TargetStage(),
		Contribution: &entities.Contribution{
			PatientID:   sig.PatientID,
			PatientData: sig.PatientData,
			Enhanced:    &enhanced,
		},
	}, nil
}

// Resume seeds a fresh state from a resume signal
func Resume(sig entities.ResumeSignal) (entities.JourneyState, error) {
	cmd, err := ResumeCommand(sig)
	if err != nil {
		return entities.JourneyState{}, err
	}
	res, err := Apply(NewState(), cmd)
	if err != nil {
		return entities.JourneyState{}, err
	}
	return res.State, nil
}
