package entities

// AgeBracket is one of the five coarse age ranges captured by the questionnaire
type AgeBracket string

const (
	AgeBracket18To29    AgeBracket = "18-29"
	AgeBracket30To44    AgeBracket = "30-44"
	AgeBracket45To59    AgeBracket = "45-59"
	AgeBracket60To74    AgeBracket = "60-74"
	AgeBracket75AndOver AgeBracket = "75+"
)

var ageBracketLowerBounds = map[AgeBracket]int{
	AgeBracket18To29:    18,
	AgeBracket30To44:    30,
	AgeBracket45To59:    45,
	AgeBracket60To74:    60,
	AgeBracket75AndOver: 75,
}

// LowerBound returns the youngest age covered by the bracket
func (b AgeBracket) LowerBound() (int, bool) {
	age, ok := ageBracketLowerBounds[b]
	return age, ok
}

// Valid reports whether the bracket is known
func (b AgeBracket) Valid() bool {
	_, ok := ageBracketLowerBounds[b]
	return ok
}

// InsuranceStatus answers whether the patient holds health insurance
type InsuranceStatus string

const (
	InsuranceYes InsuranceStatus = "yes"
	InsuranceNo  InsuranceStatus = "no"
)

// EssentialInfo holds the qualifying questionnaire answers
type EssentialInfo struct {
	AgeBracket       AgeBracket      `json:"age_bracket"`
	MedicalCondition bool            `json:"medical_condition"`
	InsuranceStatus  InsuranceStatus `json:"insurance_status"`
}
