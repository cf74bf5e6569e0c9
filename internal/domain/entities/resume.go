package entities

// ResumeSignal is the typed handoff from an alternate entry flow.
// Step is 1-based: the journey resumes at stage Step-1.
type ResumeSignal struct {
	Step        int            `json:"step"`
	PatientID   string         `json:"patient_id"`
	PatientData map[string]any `json:"patient_data,omitempty"`
	Enhanced    bool           `json:"enhanced,omitempty"`
}

// TargetStage returns the 0-indexed stage the signal resumes at
func (s ResumeSignal) TargetStage() Stage {
	return Stage(s.Step - 1)
}
