package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// PlaceholderPatientPrefix prefixes locally synthesized patient ids
const PlaceholderPatientPrefix = "TEMP-"

// IdentityService registers patients, optionally degrading to a placeholder
// identity when the registration collaborator fails.
type IdentityService struct {
	provider         providers.IdentityProvider
	allowPlaceholder bool
}

// NewIdentityService creates a new identity service. provider may be nil,
// in which case every registration is a placeholder (if allowed).
func NewIdentityService(provider providers.IdentityProvider, allowPlaceholder bool) *IdentityService {
	return &IdentityService{
		provider:         provider,
		allowPlaceholder: allowPlaceholder,
	}
}

// Register creates the patient identity for the form
func (s *IdentityService) Register(ctx context.Context, form entities.IdentityForm) (*entities.Identity, error) {
	form.FullName = strings.TrimSpace(form.FullName)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)

	if form.FullName == "" {
		return nil, apperrors.NewValidationError("full_name is required")
	}
	if form.Email == "" && form.Phone == "" {
		return nil, apperrors.NewValidationError("email or phone is required")
	}

	if s.provider != nil {
		identity, err := s.provider.CreateIdentity(ctx, form)
		if err == nil && identity != nil && identity.PatientID != "" {
			return identity, nil
		}
		if !s.allowPlaceholder {
			return nil, apperrors.NewExternalError("patient registration failed", err)
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Patient registration failed; continuing with placeholder identity")
	} else if !s.allowPlaceholder {
		return nil, apperrors.NewExternalError("patient registration is not configured", nil)
	}

	return placeholderIdentity(form), nil
}

func placeholderIdentity(form entities.IdentityForm) *entities.Identity {
	data := map[string]any{
		"full_name":   form.FullName,
		"placeholder": true,
	}
	if form.Email != "" {
		data["email"] = form.Email
	}
	if form.Phone != "" {
		data["phone"] = form.Phone
	}
	if form.City != "" {
		data["city"] = form.City
	}
	return &entities.Identity{
		PatientID:   PlaceholderPatientPrefix + uuid.NewString(),
		PatientData: data,
		Placeholder: true,
	}
}
