package services

import (
	"sort"

	"github.com/zatekoja/surgicalbooking/internal/application/pricing"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// HospitalPreview is a hospital with the price the journey would have there
type HospitalPreview struct {
	Hospital entities.Hospital `json:"hospital"`
	Price    pricing.Breakdown `json:"price"`
}

// ZoneGroup collects the hospitals of one zone tier
type ZoneGroup struct {
	Zone      entities.Zone     `json:"zone"`
	Label     string            `json:"label"`
	Hospitals []HospitalPreview `json:"hospitals"`
}

// FacilityPreviewService groups hospitals by zone and prices each one
type FacilityPreviewService struct {
	calculator *pricing.Calculator
}

// NewFacilityPreviewService creates a new facility preview service
func NewFacilityPreviewService(calculator *pricing.Calculator) *FacilityPreviewService {
	return &FacilityPreviewService{calculator: calculator}
}

// Preview prices every hospital with the chosen implant, grouped by ascending zone.
// Hospitals keep their catalog order within a zone.
func (s *FacilityPreviewService) Preview(implant *entities.Implant, hospitals []entities.Hospital) ([]ZoneGroup, error) {
	byZone := make(map[entities.Zone][]HospitalPreview)
	for _, h := range hospitals {
		price, err := s.calculator.Price(implant, &h)
		if err != nil {
			return nil, err
		}
		byZone[h.Zone] = append(byZone[h.Zone], HospitalPreview{Hospital: h, Price: price})
	}

	zones := make([]entities.Zone, 0, len(byZone))
	for z := range byZone {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })

	groups := make([]ZoneGroup, 0, len(zones))
	for _, z := range zones {
		groups = append(groups, ZoneGroup{Zone: z, Label: z.Label(), Hospitals: byZone[z]})
	}
	return groups, nil
}
