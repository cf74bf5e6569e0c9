package catalog

import (
	"context"
	"slices"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
)

// StaticAdapter serves the built-in catalog. It backs the degraded mode of the
// procedure and implant stages and stands in for the catalog service locally.
type StaticAdapter struct {
	procedures []entities.Surgery
	surgeons   []entities.Surgeon
	implants   map[string][]entities.Implant
	hospitals  []entities.Hospital
}

// NewStaticAdapter creates a catalog provider over the built-in catalog
func NewStaticAdapter() providers.CatalogProvider {
	return &StaticAdapter{
		procedures: builtinProcedures,
		surgeons:   builtinSurgeons,
		implants:   builtinImplants,
		hospitals:  builtinHospitals,
	}
}

// FetchProcedures returns the built-in surgery catalog
func (a *StaticAdapter) FetchProcedures(ctx context.Context) ([]entities.Surgery, error) {
	return slices.Clone(a.procedures), nil
}

// FetchSurgeons returns the built-in surgeon list
func (a *StaticAdapter) FetchSurgeons(ctx context.Context) ([]entities.Surgeon, error) {
	return slices.Clone(a.surgeons), nil
}

// FetchImplants returns the built-in implants for a procedure category.
// Unknown categories get an empty list.
func (a *StaticAdapter) FetchImplants(ctx context.Context, category string) ([]entities.Implant, error) {
	return slices.Clone(a.implants[category]), nil
}

// FetchHospitals returns the built-in hospital list
func (a *StaticAdapter) FetchHospitals(ctx context.Context) ([]entities.Hospital, error) {
	out := make([]entities.Hospital, len(a.hospitals))
	for i, h := range a.hospitals {
		h.Facilities = slices.Clone(h.Facilities)
		out[i] = h
	}
	return out, nil
}

var builtinProcedures = []entities.Surgery{
	{ID: "tkr", Name: "Total Knee Replacement", Category: "knee", BaseCost: 3500000, DurationLabel: "2-3 hours", RecoveryLabel: "6-12 weeks", Rating: 4.8},
	{ID: "pkr", Name: "Partial Knee Replacement", Category: "knee", BaseCost: 2800000, DurationLabel: "1-2 hours", RecoveryLabel: "4-6 weeks", Rating: 4.7},
	{ID: "thr", Name: "Total Hip Replacement", Category: "hip", BaseCost: 4000000, DurationLabel: "2-3 hours", RecoveryLabel: "8-12 weeks", Rating: 4.9},
	{ID: "acl", Name: "ACL Reconstruction", Category: "ligament", BaseCost: 1800000, DurationLabel: "1-2 hours", RecoveryLabel: "6-9 months", Rating: 4.6},
	{ID: "spinal-fusion", Name: "Spinal Fusion", Category: "spine", BaseCost: 5200000, DurationLabel: "3-5 hours", RecoveryLabel: "3-6 months", Rating: 4.5},
}

var builtinSurgeons = []entities.Surgeon{
	{ID: "dr-adeyemi", Name: "Dr. Tunde Adeyemi", Specialization: "Joint Replacement", ExperienceYears: 18, Rating: 4.9, TrainingType: "International", OnlineConsultation: true, Location: "Victoria Island, Lagos"},
	{ID: "dr-okafor", Name: "Dr. Chioma Okafor", Specialization: "Sports Medicine", ExperienceYears: 9, Rating: 4.8, TrainingType: "Local", OnlineConsultation: true, Location: "Ikeja, Lagos"},
	{ID: "dr-bello", Name: "Dr. Ibrahim Bello", Specialization: "Spine Surgery", ExperienceYears: 14, Rating: 4.7, TrainingType: "International", OnlineConsultation: false, Location: "Wuse, Abuja"},
	{ID: "dr-eze", Name: "Dr. Ngozi Eze", Specialization: "Joint Replacement", ExperienceYears: 6, Rating: 4.6, TrainingType: "Local", OnlineConsultation: false, Location: "Lekki, Lagos"},
	{ID: "dr-akande", Name: "Dr. Femi Akande", Specialization: "Orthopaedic Trauma", ExperienceYears: 3, Rating: 4.4, TrainingType: "Local", OnlineConsultation: true, Location: "Port Harcourt"},
}

var builtinImplants = map[string][]entities.Implant{
	"knee": {
		{ID: "knee-attune", Name: "Attune Knee System", Brand: "DePuy Synthes", Tier: entities.ImplantTierPremium, Cost: 285000, WarrantyYears: 20, Category: "knee"},
		{ID: "knee-triathlon", Name: "Triathlon Knee", Brand: "Stryker", Tier: entities.ImplantTierStandard, Cost: 165000, WarrantyYears: 15, Category: "knee"},
		{ID: "knee-nexgen", Name: "NexGen Primary Knee", Brand: "Zimmer Biomet", Tier: entities.ImplantTierBasic, Cost: 95000, WarrantyYears: 10, Category: "knee"},
	},
	"hip": {
		{ID: "hip-pinnacle", Name: "Pinnacle Hip System", Brand: "DePuy Synthes", Tier: entities.ImplantTierPremium, Cost: 310000, WarrantyYears: 20, Category: "hip"},
		{ID: "hip-accolade", Name: "Accolade II", Brand: "Stryker", Tier: entities.ImplantTierStandard, Cost: 180000, WarrantyYears: 15, Category: "hip"},
		{ID: "hip-taperloc", Name: "Taperloc Stem", Brand: "Zimmer Biomet", Tier: entities.ImplantTierBasic, Cost: 110000, WarrantyYears: 10, Category: "hip"},
	},
	"ligament": {
		{ID: "acl-bioabsorbable", Name: "Bioabsorbable Screw Fixation", Brand: "Arthrex", Tier: entities.ImplantTierPremium, Cost: 120000, WarrantyYears: 0, Category: "ligament"},
		{ID: "acl-titanium", Name: "Titanium Interference Screw", Brand: "Smith & Nephew", Tier: entities.ImplantTierStandard, Cost: 70000, WarrantyYears: 0, Category: "ligament"},
		{ID: "acl-endobutton", Name: "EndoButton Fixation", Brand: "Smith & Nephew", Tier: entities.ImplantTierBasic, Cost: 45000, WarrantyYears: 0, Category: "ligament"},
	},
	"spine": {
		{ID: "spine-expedium", Name: "Expedium Pedicle Screw System", Brand: "DePuy Synthes", Tier: entities.ImplantTierPremium, Cost: 420000, WarrantyYears: 15, Category: "spine"},
		{ID: "spine-solera", Name: "Solera Spinal System", Brand: "Medtronic", Tier: entities.ImplantTierStandard, Cost: 260000, WarrantyYears: 10, Category: "spine"},
		{ID: "spine-xia", Name: "Xia 3 Spinal System", Brand: "Stryker", Tier: entities.ImplantTierBasic, Cost: 175000, WarrantyYears: 10, Category: "spine"},
	},
}

var builtinHospitals = []entities.Hospital{
	{
		ID: "lagoon-vi", Name: "Lagoon Hospital Victoria Island", Zone: entities.ZonePremium,
		BasePrice: 450000, ConsumablesCost: 120000,
		Facilities:        []string{"ICU", "Private Rooms", "Physiotherapy", "24/7 Pharmacy"},
		InsuranceAccepted: true,
		Address:           entities.Address{Street: "17B Bourdillon Road", City: "Lagos", State: "Lagos", Country: "Nigeria"},
		Location:          entities.Location{Latitude: 6.4541, Longitude: 3.4246},
	},
	{
		ID: "reddington-ikeja", Name: "Reddington Hospital Ikeja", Zone: entities.ZoneMid,
		BasePrice: 250000, ConsumablesCost: 60000,
		Facilities:        []string{"ICU", "Physiotherapy"},
		InsuranceAccepted: true,
		Address:           entities.Address{Street: "15C Isaac John Street", City: "Lagos", State: "Lagos", Country: "Nigeria"},
		Location:          entities.Location{Latitude: 6.5774, Longitude: 3.3550},
	},
	{
		ID: "nizamiye-abuja", Name: "Nizamiye Hospital", Zone: entities.ZoneMid,
		BasePrice: 220000, ConsumablesCost: 55000,
		Facilities:        []string{"ICU", "Private Rooms"},
		InsuranceAccepted: false,
		Address:           entities.Address{Street: "Plot 113 Life Camp", City: "Abuja", State: "FCT", Country: "Nigeria"},
		Location:          entities.Location{Latitude: 9.0747, Longitude: 7.4117},
	},
	{
		ID: "gbagada-general", Name: "Gbagada General Hospital", Zone: entities.ZoneEssential,
		BasePrice: 45000, ConsumablesCost: 15000,
		Facilities:        []string{"Physiotherapy"},
		InsuranceAccepted: true,
		Address:           entities.Address{Street: "1 Hospital Road", City: "Lagos", State: "Lagos", Country: "Nigeria"},
		Location:          entities.Location{Latitude: 6.5510, Longitude: 3.3918},
	},
}
