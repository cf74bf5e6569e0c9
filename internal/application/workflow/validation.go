package workflow

import (
	"fmt"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// validateStage checks that the merged context holds what the stage collects
func validateStage(stage entities.Stage, bc entities.BookingContext) error {
	switch stage {
	case entities.StageIdentity:
		if bc.PatientID == "" {
			return apperrors.NewValidationError("patient_id is required")
		}
	case entities.StageQualifying:
		info := bc.EssentialInfo
		if info == nil {
			return apperrors.NewValidationError("essential_info is required")
		}
		if !info.AgeBracket.Valid() {
			return apperrors.NewValidationError(fmt.Sprintf("unknown age bracket %q", info.AgeBracket))
		}
		if info.InsuranceStatus != entities.InsuranceYes && info.InsuranceStatus != entities.InsuranceNo {
			return apperrors.NewValidationError("insurance_status must be yes or no")
		}
	case entities.StageProcedure:
		if bc.Surgery == nil || bc.Surgery.ID == "" {
			return apperrors.NewValidationError("surgery is required")
		}
	case entities.StageProvider:
		if bc.Surgeon == nil || bc.Surgeon.ID == "" {
			return apperrors.NewValidationError("surgeon is required")
		}
	case entities.StageAddon:
		if bc.Implant == nil || bc.Implant.ID == "" {
			return apperrors.NewValidationError("implant is required")
		}
	case entities.StageFacility:
		if bc.Hospital == nil || bc.Hospital.ID == "" {
			return apperrors.NewValidationError("hospital is required")
		}
	case entities.StageFinalize:
		return apperrors.NewConflictError("FINALIZE is the last stage; submit the booking instead")
	default:
		return apperrors.NewStepOutOfRangeError(int(stage))
	}
	return nil
}
