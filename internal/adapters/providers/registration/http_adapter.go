package registration

import (
	"context"
	"fmt"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/collaborator"
)

// HTTPAdapter implements IdentityProvider over the registration service
type HTTPAdapter struct {
	client collaborator.Client
}

// NewHTTPAdapter creates a registration provider
func NewHTTPAdapter(client collaborator.Client) providers.IdentityProvider {
	return &HTTPAdapter{client: client}
}

// CreateIdentity registers the patient and returns the assigned identity
func (a *HTTPAdapter) CreateIdentity(ctx context.Context, form entities.IdentityForm) (*entities.Identity, error) {
	resp, err := a.client.RegisterPatient(ctx, collaborator.RegisterPatientRequest{
		FullName: form.FullName,
		Email:    form.Email,
		Phone:    form.Phone,
		City:     form.City,
	})
	if err != nil {
		return nil, fmt.Errorf("register patient: %w", err)
	}

	data := resp.PatientData
	if data == nil {
		data = map[string]any{"full_name": form.FullName}
	}
	return &entities.Identity{
		PatientID:   resp.PatientID,
		PatientData: data,
	}, nil
}
