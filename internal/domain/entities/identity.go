package entities

// IdentityForm is the registration data collected at the identity stage
type IdentityForm struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city,omitempty"`
}

// Identity is the registration collaborator's answer
type Identity struct {
	PatientID   string         `json:"patient_id"`
	PatientData map[string]any `json:"patient_data"`
	Placeholder bool           `json:"placeholder"`
}
