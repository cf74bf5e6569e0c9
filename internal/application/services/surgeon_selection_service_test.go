package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

func candidateSurgeons() []entities.Surgeon {
	return []entities.Surgeon{
		{ID: "s-3", ExperienceYears: 3, Rating: 4.9, TrainingType: "fellowship", OnlineConsultation: true, Location: "Pune"},
		{ID: "s-9", ExperienceYears: 9, Rating: 4.2, TrainingType: "residency", Location: "Mumbai"},
		{ID: "s-10", ExperienceYears: 10, Rating: 4.5, TrainingType: "fellowship", Location: "Navi Mumbai"},
		{ID: "s-15", ExperienceYears: 15, Rating: 4.7, TrainingType: "fellowship", OnlineConsultation: true, Location: "Delhi"},
	}
}

func ids(surgeons []entities.Surgeon) []string {
	out := make([]string, len(surgeons))
	for i, s := range surgeons {
		out[i] = s.ID
	}
	return out
}

func TestSelect_TenPlusExperience(t *testing.T) {
	svc := NewSurgeonSelectionService()

	got := svc.Select(candidateSurgeons(), SurgeonFilter{Experience: ExperienceTenPlus})

	assert.Equal(t, []string{"s-15", "s-10"}, ids(got))
}

func TestSelect_ExperienceBrackets(t *testing.T) {
	svc := NewSurgeonSelectionService()

	assert.Equal(t, []string{"s-9"}, ids(svc.Select(candidateSurgeons(), SurgeonFilter{Experience: ExperienceFiveToTen})))
	assert.Equal(t, []string{"s-3"}, ids(svc.Select(candidateSurgeons(), SurgeonFilter{Experience: ExperienceUnderFive})))
}

func TestSelect_NoFilterRanksAll(t *testing.T) {
	svc := NewSurgeonSelectionService()

	got := svc.Select(candidateSurgeons(), SurgeonFilter{})

	assert.Equal(t, []string{"s-3", "s-15", "s-10", "s-9"}, ids(got))
}

func TestSelect_CombinesFiltersWithAnd(t *testing.T) {
	svc := NewSurgeonSelectionService()
	online := true
	minRating := 4.6

	got := svc.Select(candidateSurgeons(), SurgeonFilter{
		TrainingType:       "fellowship",
		OnlineConsultation: &online,
		MinRating:          &minRating,
	})
	assert.Equal(t, []string{"s-3", "s-15"}, ids(got))

	got = svc.Select(candidateSurgeons(), SurgeonFilter{Location: "MUMBAI"})
	assert.Equal(t, []string{"s-10", "s-9"}, ids(got))

	offline := false
	got = svc.Select(candidateSurgeons(), SurgeonFilter{OnlineConsultation: &offline, Experience: ExperienceTenPlus})
	assert.Equal(t, []string{"s-10"}, ids(got))
}

func TestRank_TieBreaksOnExperience(t *testing.T) {
	svc := NewSurgeonSelectionService()
	input := []entities.Surgeon{
		{ID: "junior", Rating: 4.5, ExperienceYears: 6},
		{ID: "senior", Rating: 4.5, ExperienceYears: 20},
		{ID: "top", Rating: 4.9, ExperienceYears: 1},
	}

	got := svc.Rank(input)

	assert.Equal(t, []string{"top", "senior", "junior"}, ids(got))
	assert.Equal(t, "junior", input[0].ID, "input order must be preserved")
}

func TestParseSurgeonFilter(t *testing.T) {
	filter, err := ParseSurgeonFilter("10+", " fellowship ", "true", "4.5", "pune")
	require.NoError(t, err)
	assert.Equal(t, ExperienceTenPlus, filter.Experience)
	assert.Equal(t, "fellowship", filter.TrainingType)
	require.NotNil(t, filter.OnlineConsultation)
	assert.True(t, *filter.OnlineConsultation)
	require.NotNil(t, filter.MinRating)
	assert.Equal(t, 4.5, *filter.MinRating)
	assert.Equal(t, "pune", filter.Location)

	empty, err := ParseSurgeonFilter("", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, SurgeonFilter{}, empty)

	_, err = ParseSurgeonFilter("20+", "", "", "", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	_, err = ParseSurgeonFilter("", "", "maybe", "", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
	_, err = ParseSurgeonFilter("", "", "", "high", "")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
