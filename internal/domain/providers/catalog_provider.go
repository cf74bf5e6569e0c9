package providers

import (
	"context"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// CatalogProvider fetches the candidate lists offered at each selection stage
type CatalogProvider interface {
	// FetchProcedures returns the surgery catalog
	FetchProcedures(ctx context.Context) ([]entities.Surgery, error)

	// FetchSurgeons returns candidate surgeons
	FetchSurgeons(ctx context.Context) ([]entities.Surgeon, error)

	// FetchImplants returns implants for a procedure category
	FetchImplants(ctx context.Context, category string) ([]entities.Implant, error)

	// FetchHospitals returns candidate hospitals
	FetchHospitals(ctx context.Context) ([]entities.Hospital, error)
}
