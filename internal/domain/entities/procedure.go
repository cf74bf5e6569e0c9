package entities

// Surgery represents a surgical procedure offered in the catalog
type Surgery struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"` // e.g. knee, hip; selects the implant fallback catalog
	BaseCost      int64   `json:"base_cost"`
	DurationLabel string  `json:"duration_label"`
	RecoveryLabel string  `json:"recovery_label"`
	Rating        float64 `json:"rating"`
}

// Surgeon represents a provider who can perform the selected surgery
type Surgeon struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Specialization     string  `json:"specialization"`
	ExperienceYears    int     `json:"experience_years"`
	Rating             float64 `json:"rating"`
	TrainingType       string  `json:"training_type"`
	OnlineConsultation bool    `json:"online_consultation"`
	Location           string  `json:"location"`
}
