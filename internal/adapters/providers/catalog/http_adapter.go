package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/collaborator"
	"github.com/zatekoja/surgicalbooking/pkg/retry"
)

// HTTPAdapter implements CatalogProvider over the remote catalog service
type HTTPAdapter struct {
	client collaborator.Client
}

// NewHTTPAdapter creates a catalog provider backed by the collaborator client
func NewHTTPAdapter(client collaborator.Client) providers.CatalogProvider {
	return &HTTPAdapter{client: client}
}

// NewCatalogProvider returns the remote catalog when a client is configured,
// and the built-in catalog otherwise.
func NewCatalogProvider(client collaborator.Client) providers.CatalogProvider {
	if client == nil {
		return NewStaticAdapter()
	}
	return NewHTTPAdapter(client)
}

func (a *HTTPAdapter) FetchProcedures(ctx context.Context) ([]entities.Surgery, error) {
	dtos, err := a.client.ListProcedures(ctx)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]entities.Surgery, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entities.Surgery{
			ID:            d.ID,
			Name:          d.Name,
			Category:      d.Category,
			BaseCost:      d.BaseCost,
			DurationLabel: d.Duration,
			RecoveryLabel: d.Recovery,
			Rating:        d.Rating,
		})
	}
	return out, nil
}

func (a *HTTPAdapter) FetchSurgeons(ctx context.Context) ([]entities.Surgeon, error) {
	dtos, err := a.client.ListSurgeons(ctx)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]entities.Surgeon, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entities.Surgeon{
			ID:                 d.ID,
			Name:               d.Name,
			Specialization:     d.Specialization,
			ExperienceYears:    d.ExperienceYears,
			Rating:             d.Rating,
			TrainingType:       d.TrainingType,
			OnlineConsultation: d.OnlineConsultation,
			Location:           d.Location,
		})
	}
	return out, nil
}

func (a *HTTPAdapter) FetchImplants(ctx context.Context, category string) ([]entities.Implant, error) {
	dtos, err := a.client.ListImplants(ctx, category)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]entities.Implant, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entities.Implant{
			ID:            d.ID,
			Name:          d.Name,
			Brand:         d.Brand,
			Tier:          entities.ImplantTier(strings.ToLower(strings.TrimSpace(d.Tier))),
			Cost:          d.Cost,
			WarrantyYears: d.WarrantyYears,
			Category:      d.Category,
		})
	}
	return out, nil
}

func (a *HTTPAdapter) FetchHospitals(ctx context.Context) ([]entities.Hospital, error) {
	dtos, err := a.client.ListHospitals(ctx)
	if err != nil {
		return nil, classify(err)
	}
	out := make([]entities.Hospital, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, entities.Hospital{
			ID:                d.ID,
			Name:              d.Name,
			Zone:              entities.Zone(d.Zone),
			BasePrice:         d.BasePrice,
			ConsumablesCost:   d.ConsumablesCost,
			Facilities:        d.Facilities,
			InsuranceAccepted: d.InsuranceAccepted,
			Address: entities.Address{
				Street:  d.Address.Street,
				City:    d.Address.City,
				State:   d.Address.State,
				Country: d.Address.Country,
			},
			Location: entities.Location{
				Latitude:  d.Location.Latitude,
				Longitude: d.Location.Longitude,
			},
		})
	}
	return out, nil
}

// classify marks client errors that a retry cannot fix as permanent
func classify(err error) error {
	var statusErr *collaborator.StatusError
	if errors.As(err, &statusErr) && !statusErr.Retryable() {
		return retry.Permanent(err)
	}
	return err
}
