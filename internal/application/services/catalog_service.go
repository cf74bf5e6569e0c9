package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
	"github.com/zatekoja/surgicalbooking/pkg/retry"
)

// CatalogResult is a fetched candidate list plus degraded-mode information
type CatalogResult[T any] struct {
	Items    []T    `json:"items"`
	Degraded bool   `json:"degraded"`
	Notice   string `json:"notice,omitempty"`
}

// CatalogService fetches candidate lists. Procedure and implant catalogs
// degrade to the built-in catalog; surgeon and hospital lists do not.
type CatalogService struct {
	primary  providers.CatalogProvider
	fallback providers.CatalogProvider
	cache    providers.CacheProvider
	cacheTTL int
	retryCfg retry.Config
}

// NewCatalogService creates a new catalog service. cache may be nil.
func NewCatalogService(
	primary providers.CatalogProvider,
	fallback providers.CatalogProvider,
	cache providers.CacheProvider,
	cacheTTLSeconds int,
) *CatalogService {
	return &CatalogService{
		primary:  primary,
		fallback: fallback,
		cache:    cache,
		cacheTTL: cacheTTLSeconds,
		retryCfg: retry.CollaboratorConfig("catalog"),
	}
}

// SetRetryConfig overrides the retry policy used for collaborator calls
func (s *CatalogService) SetRetryConfig(cfg retry.Config) {
	s.retryCfg = cfg
}

// Procedures returns the surgery catalog
func (s *CatalogService) Procedures(ctx context.Context) (CatalogResult[entities.Surgery], error) {
	items, err := fetchCached(ctx, s, "catalog:procedures", s.primary.FetchProcedures)
	if err == nil {
		return CatalogResult[entities.Surgery]{Items: items}, nil
	}
	if ctx.Err() != nil || s.fallback == nil {
		return CatalogResult[entities.Surgery]{}, apperrors.NewExternalError("procedure catalog unavailable", err)
	}

	observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Procedure catalog fetch failed; using built-in catalog")
	items, ferr := s.fallback.FetchProcedures(ctx)
	if ferr != nil {
		return CatalogResult[entities.Surgery]{}, apperrors.NewExternalError("procedure catalog unavailable", errors.Join(err, ferr))
	}
	return CatalogResult[entities.Surgery]{
		Items:    items,
		Degraded: true,
		Notice:   "Live procedure catalog is unavailable; showing the built-in catalog.",
	}, nil
}

// Surgeons returns candidate surgeons
func (s *CatalogService) Surgeons(ctx context.Context) ([]entities.Surgeon, error) {
	items, err := fetchCached(ctx, s, "catalog:surgeons", s.primary.FetchSurgeons)
	if err != nil {
		return nil, apperrors.NewExternalError("surgeon list unavailable, please retry", err)
	}
	return items, nil
}

// Implants returns the implant catalog for a procedure category
func (s *CatalogService) Implants(ctx context.Context, category string) (CatalogResult[entities.Implant], error) {
	fetch := func(ctx context.Context) ([]entities.Implant, error) {
		return s.primary.FetchImplants(ctx, category)
	}
	items, err := fetchCached(ctx, s, "catalog:implants:"+category, fetch)
	if err == nil {
		return CatalogResult[entities.Implant]{Items: items}, nil
	}
	if ctx.Err() != nil || s.fallback == nil {
		return CatalogResult[entities.Implant]{}, apperrors.NewExternalError("implant catalog unavailable", err)
	}

	observability.LoggerFromContext(ctx).Warn().Err(err).Str("category", category).Msg("Implant catalog fetch failed; using built-in catalog")
	items, ferr := s.fallback.FetchImplants(ctx, category)
	if ferr != nil {
		return CatalogResult[entities.Implant]{}, apperrors.NewExternalError("implant catalog unavailable", errors.Join(err, ferr))
	}
	return CatalogResult[entities.Implant]{
		Items:    items,
		Degraded: true,
		Notice:   "Live implant catalog is unavailable; showing the built-in catalog.",
	}, nil
}

// Hospitals returns candidate hospitals
func (s *CatalogService) Hospitals(ctx context.Context) ([]entities.Hospital, error) {
	items, err := fetchCached(ctx, s, "catalog:hospitals", s.primary.FetchHospitals)
	if err != nil {
		return nil, apperrors.NewExternalError("hospital list unavailable, please retry", err)
	}
	return items, nil
}

func fetchCached[T any](ctx context.Context, s *CatalogService, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	logger := observability.LoggerFromContext(ctx)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var items []T
			if err := json.Unmarshal(cached, &items); err == nil {
				return items, nil
			}
			logger.Warn().Str("key", key).Msg("Discarding undecodable cached catalog")
		} else if !errors.Is(err, providers.ErrCacheMiss) {
			logger.Warn().Err(err).Str("key", key).Msg("Catalog cache read failed")
		}
	}

	cfg := s.retryCfg
	cfg.OnRetry = func(attempt int, err error, nextDelay time.Duration) {
		logger.Debug().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Str("key", key).Msg("Retrying catalog fetch")
	}

	var items []T
	err := retry.Do(ctx, cfg, func(ctx context.Context) error {
		var err error
		items, err = fetch(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if data, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("Failed to cache catalog")
			}
		}
	}
	return items, nil
}

// Resolve replaces the catalog records in a contribution with the catalog's
// own copies, looked up by ID. Prices therefore always come from the catalog,
// never from the caller. An ID the catalog does not know is a validation error.
func (s *CatalogService) Resolve(ctx context.Context, current entities.BookingContext, c entities.Contribution) (entities.Contribution, error) {
	if c.Surgery != nil {
		procedures, err := s.Procedures(ctx)
		if err != nil {
			return c, err
		}
		surgery, err := findByID(procedures.Items, c.Surgery.ID, "surgery", func(v entities.Surgery) string { return v.ID })
		if err != nil {
			return c, err
		}
		c.Surgery = surgery
	}

	if c.Surgeon != nil {
		surgeons, err := s.Surgeons(ctx)
		if err != nil {
			return c, err
		}
		surgeon, err := findByID(surgeons, c.Surgeon.ID, "surgeon", func(v entities.Surgeon) string { return v.ID })
		if err != nil {
			return c, err
		}
		c.Surgeon = surgeon
	}

	if c.Implant != nil {
		if c.Implant.IsSurgeonChoice() {
			c.Implant = entities.SurgeonChoiceImplant()
		} else {
			surgery := c.Surgery
			if surgery == nil {
				surgery = current.Surgery
			}
			if surgery == nil {
				return c, apperrors.NewValidationError("surgery must be chosen before implants")
			}
			implants, err := s.Implants(ctx, surgery.Category)
			if err != nil {
				return c, err
			}
			implant, err := findByID(implants.Items, c.Implant.ID, "implant", func(v entities.Implant) string { return v.ID })
			if err != nil {
				return c, err
			}
			c.Implant = implant
		}
	}

	if c.Hospital != nil {
		hospitals, err := s.Hospitals(ctx)
		if err != nil {
			return c, err
		}
		hospital, err := findByID(hospitals, c.Hospital.ID, "hospital", func(v entities.Hospital) string { return v.ID })
		if err != nil {
			return c, err
		}
		c.Hospital = hospital
	}

	return c, nil
}

func findByID[T any](items []T, id, kind string, idOf func(T) string) (*T, error) {
	if id == "" {
		return nil, apperrors.NewValidationError(kind + " id is required")
	}
	for i := range items {
		if idOf(items[i]) == id {
			found := items[i]
			return &found, nil
		}
	}
	return nil, apperrors.NewValidationError(fmt.Sprintf("unknown %s %q", kind, id))
}
