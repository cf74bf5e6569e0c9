package providers

import (
	"context"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// IdentityProvider registers a patient with the registration service
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, form entities.IdentityForm) (*entities.Identity, error)
}
