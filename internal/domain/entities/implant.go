package entities

// ImplantTier is the catalog tier used by the implant recommendation rule
type ImplantTier string

const (
	ImplantTierPremium  ImplantTier = "premium"
	ImplantTierStandard ImplantTier = "standard"
	ImplantTierBasic    ImplantTier = "basic"
)

// SurgeonChoiceImplantID marks an implant decision deferred to the surgeon
const SurgeonChoiceImplantID = "surgeon_choice"

// Implant represents an optional add-on selected for the surgery
type Implant struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Brand         string      `json:"brand,omitempty"`
	Tier          ImplantTier `json:"tier,omitempty"`
	Cost          int64       `json:"cost"`
	WarrantyYears int         `json:"warranty_years,omitempty"`
	Category      string      `json:"category,omitempty"`
}

// SurgeonChoiceImplant returns the sentinel implant meaning "deferred to the surgeon"
func SurgeonChoiceImplant() *Implant {
	return &Implant{
		ID:   SurgeonChoiceImplantID,
		Name: "Provider's Recommendation",
	}
}

// IsSurgeonChoice reports whether the implant is the deferred sentinel
func (i *Implant) IsSurgeonChoice() bool {
	return i != nil && i.ID == SurgeonChoiceImplantID
}
