package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

func validForm() entities.IdentityForm {
	return entities.IdentityForm{
		FullName: "Amaka Obi",
		Email:    "amaka@example.com",
		City:     "Lagos",
	}
}

func TestIdentityService_Register_UsesProvider(t *testing.T) {
	provider := new(MockIdentityProvider)
	identity := &entities.Identity{PatientID: "P-100", PatientData: map[string]any{"full_name": "Amaka Obi"}}
	provider.On("CreateIdentity", mock.Anything, validForm()).Return(identity, nil)

	svc := NewIdentityService(provider, true)
	got, err := svc.Register(context.Background(), validForm())

	require.NoError(t, err)
	assert.Equal(t, "P-100", got.PatientID)
	assert.False(t, got.Placeholder)
	provider.AssertExpectations(t)
}

func TestIdentityService_Register_TrimsInput(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("CreateIdentity", mock.Anything, entities.IdentityForm{FullName: "Amaka Obi", Phone: "+2348000000000"}).
		Return(&entities.Identity{PatientID: "P-1"}, nil)

	svc := NewIdentityService(provider, false)
	_, err := svc.Register(context.Background(), entities.IdentityForm{FullName: "  Amaka Obi ", Phone: " +2348000000000 "})

	require.NoError(t, err)
	provider.AssertExpectations(t)
}

func TestIdentityService_Register_Validation(t *testing.T) {
	svc := NewIdentityService(nil, true)

	_, err := svc.Register(context.Background(), entities.IdentityForm{Email: "a@b.c"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	_, err = svc.Register(context.Background(), entities.IdentityForm{FullName: "Amaka"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}

func TestIdentityService_Register_PlaceholderOnProviderFailure(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("CreateIdentity", mock.Anything, mock.Anything).Return(nil, errors.New("registration down"))

	svc := NewIdentityService(provider, true)
	got, err := svc.Register(context.Background(), validForm())

	require.NoError(t, err)
	assert.True(t, got.Placeholder)
	assert.True(t, strings.HasPrefix(got.PatientID, PlaceholderPatientPrefix))
	assert.Equal(t, true, got.PatientData["placeholder"])
	assert.Equal(t, "Amaka Obi", got.PatientData["full_name"])
	assert.Equal(t, "Lagos", got.PatientData["city"])
}

func TestIdentityService_Register_PlaceholderIDsAreUnique(t *testing.T) {
	svc := NewIdentityService(nil, true)

	a, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)
	b, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)

	assert.NotEqual(t, a.PatientID, b.PatientID)
}

func TestIdentityService_Register_PlaceholderDisabled(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("CreateIdentity", mock.Anything, mock.Anything).Return(nil, errors.New("registration down"))

	svc := NewIdentityService(provider, false)
	_, err := svc.Register(context.Background(), validForm())
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExternal))

	svc = NewIdentityService(nil, false)
	_, err = svc.Register(context.Background(), validForm())
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeExternal))
}
