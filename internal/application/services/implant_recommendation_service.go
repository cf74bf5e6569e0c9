package services

import (
	"fmt"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// ImplantMethod is how the patient chooses the implant
type ImplantMethod string

const (
	ImplantMethodRecommended ImplantMethod = "recommended"
	ImplantMethodBrowse      ImplantMethod = "browse"
	ImplantMethodDeferred    ImplantMethod = "deferred"
)

// ParseImplantMethod validates a selection method, defaulting to browse
func ParseImplantMethod(raw string) (ImplantMethod, error) {
	switch m := ImplantMethod(raw); m {
	case "":
		return ImplantMethodBrowse, nil
	case ImplantMethodRecommended, ImplantMethodBrowse, ImplantMethodDeferred:
		return m, nil
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("unknown implant selection method %q", raw))
	}
}

// ImplantOptions is what the add-on stage presents
type ImplantOptions struct {
	Method      ImplantMethod      `json:"method"`
	Catalog     []entities.Implant `json:"catalog"`
	Recommended *entities.Implant  `json:"recommended,omitempty"`
	Degraded    bool               `json:"degraded"`
}

// ImplantRecommendationService maps an age bracket to an implant tier
type ImplantRecommendationService struct {
	standardFromAge int
	basicFromAge    int
}

// NewImplantRecommendationService creates a recommendation service with the
// default age cut-offs: under 35 premium, 35 to 59 standard, 60 and over basic.
func NewImplantRecommendationService() *ImplantRecommendationService {
	return &ImplantRecommendationService{
		standardFromAge: 35,
		basicFromAge:    60,
	}
}

// RecommendedTier returns the tier for the bracket's lower bound
func (s *ImplantRecommendationService) RecommendedTier(bracket entities.AgeBracket) (entities.ImplantTier, error) {
	age, ok := bracket.LowerBound()
	if !ok {
		return "", apperrors.NewValidationError(fmt.Sprintf("unknown age bracket %q", bracket))
	}

	switch {
	case age < s.standardFromAge:
		return entities.ImplantTierPremium, nil
	case age < s.basicFromAge:
		return entities.ImplantTierStandard, nil
	default:
		return entities.ImplantTierBasic, nil
	}
}

// Recommend picks the first catalog item of the recommended tier
func (s *ImplantRecommendationService) Recommend(bracket entities.AgeBracket, catalog []entities.Implant) (*entities.Implant, error) {
	tier, err := s.RecommendedTier(bracket)
	if err != nil {
		return nil, err
	}

	for i := range catalog {
		if catalog[i].Tier == tier {
			pick := catalog[i]
			return &pick, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("catalog has no %s implant", tier))
}
