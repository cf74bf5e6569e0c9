package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// ExperienceBracket filters surgeons by years of practice
type ExperienceBracket string

const (
	ExperienceAny       ExperienceBracket = ""
	ExperienceTenPlus   ExperienceBracket = "10+"
	ExperienceFiveToTen ExperienceBracket = "5-10"
	ExperienceUnderFive ExperienceBracket = "<5"
)

// Matches reports whether the given years fall in the bracket
func (b ExperienceBracket) Matches(years int) bool {
	switch b {
	case ExperienceTenPlus:
		return years >= 10
	case ExperienceFiveToTen:
		return years >= 5 && years < 10
	case ExperienceUnderFive:
		return years < 5
	default:
		return true
	}
}

// SurgeonFilter holds the independently toggled surgeon filters.
// Zero values disable a filter; active filters combine with AND.
type SurgeonFilter struct {
	Experience         ExperienceBracket `json:"experience,omitempty"`
	TrainingType       string            `json:"training_type,omitempty"`
	OnlineConsultation *bool             `json:"online_consultation,omitempty"`
	MinRating          *float64          `json:"min_rating,omitempty"`
	Location           string            `json:"location,omitempty"`
}

// ParseSurgeonFilter builds a filter from query-string style values
func ParseSurgeonFilter(experience, training, online, minRating, location string) (SurgeonFilter, error) {
	filter := SurgeonFilter{
		TrainingType: strings.TrimSpace(training),
		Location:     strings.TrimSpace(location),
	}

	switch b := ExperienceBracket(strings.TrimSpace(experience)); b {
	case ExperienceAny, ExperienceTenPlus, ExperienceFiveToTen, ExperienceUnderFive:
		filter.Experience = b
	default:
		return SurgeonFilter{}, apperrors.NewValidationError(fmt.Sprintf("unknown experience bracket %q", experience))
	}

	if online != "" {
		v, err := strconv.ParseBool(online)
		if err != nil {
			return SurgeonFilter{}, apperrors.NewValidationError("online must be true or false")
		}
		filter.OnlineConsultation = &v
	}

	if minRating != "" {
		v, err := strconv.ParseFloat(minRating, 64)
		if err != nil || v < 0 {
			return SurgeonFilter{}, apperrors.NewValidationError("min_rating must be a non-negative number")
		}
		filter.MinRating = &v
	}

	return filter, nil
}

// SurgeonSelectionService filters and orders candidate surgeons
type SurgeonSelectionService struct{}

// NewSurgeonSelectionService creates a new surgeon selection service
func NewSurgeonSelectionService() *SurgeonSelectionService {
	return &SurgeonSelectionService{}
}

// Select filters the candidates and ranks the survivors. The input is not modified.
func (s *SurgeonSelectionService) Select(candidates []entities.Surgeon, filter SurgeonFilter) []entities.Surgeon {
	return s.Rank(s.Filter(candidates, filter))
}

// Filter keeps the candidates matching every active filter
func (s *SurgeonSelectionService) Filter(candidates []entities.Surgeon, filter SurgeonFilter) []entities.Surgeon {
	location := strings.ToLower(filter.Location)

	out := make([]entities.Surgeon, 0, len(candidates))
	for _, c := range candidates {
		if !filter.Experience.Matches(c.ExperienceYears) {
			continue
		}
		if filter.TrainingType != "" && c.TrainingType != filter.TrainingType {
			continue
		}
		if filter.OnlineConsultation != nil && c.OnlineConsultation != *filter.OnlineConsultation {
			continue
		}
		if filter.MinRating != nil && c.Rating < *filter.MinRating {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(c.Location), location) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Rank orders by rating descending, then experience descending
func (s *SurgeonSelectionService) Rank(candidates []entities.Surgeon) []entities.Surgeon {
	ranked := make([]entities.Surgeon, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].ExperienceYears > ranked[j].ExperienceYears
	})
	return ranked
}
