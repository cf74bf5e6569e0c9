package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

func implantCatalog() []entities.Implant {
	return []entities.Implant{
		{ID: "k-basic", Tier: entities.ImplantTierBasic, Cost: 95000},
		{ID: "k-premium", Tier: entities.ImplantTierPremium, Cost: 285000},
		{ID: "k-standard", Tier: entities.ImplantTierStandard, Cost: 165000},
		{ID: "k-premium-2", Tier: entities.ImplantTierPremium, Cost: 310000},
	}
}

func TestRecommend_ByAgeBracket(t *testing.T) {
	svc := NewImplantRecommendationService()

	cases := map[entities.AgeBracket]string{
		entities.AgeBracket18To29:    "k-premium",
		entities.AgeBracket30To44:    "k-premium",
		entities.AgeBracket45To59:    "k-standard",
		entities.AgeBracket60To74:    "k-basic",
		entities.AgeBracket75AndOver: "k-basic",
	}
	for bracket, want := range cases {
		got, err := svc.Recommend(bracket, implantCatalog())
		require.NoError(t, err, bracket)
		assert.Equal(t, want, got.ID, bracket)
	}
}

func TestRecommend_IsDeterministic(t *testing.T) {
	svc := NewImplantRecommendationService()
	catalog := implantCatalog()

	first, err := svc.Recommend(entities.AgeBracket30To44, catalog)
	require.NoError(t, err)
	second, err := svc.Recommend(entities.AgeBracket30To44, catalog)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRecommend_KeysOnTierNotIdentifier(t *testing.T) {
	svc := NewImplantRecommendationService()
	renamed := []entities.Implant{
		{ID: "brand-new-id", Tier: entities.ImplantTierStandard},
	}

	got, err := svc.Recommend(entities.AgeBracket45To59, renamed)
	require.NoError(t, err)
	assert.Equal(t, "brand-new-id", got.ID)
}

func TestRecommend_Errors(t *testing.T) {
	svc := NewImplantRecommendationService()

	_, err := svc.Recommend("10-17", implantCatalog())
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))

	_, err = svc.Recommend(entities.AgeBracket60To74, []entities.Implant{{ID: "p", Tier: entities.ImplantTierPremium}})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestParseImplantMethod(t *testing.T) {
	m, err := ParseImplantMethod("")
	require.NoError(t, err)
	assert.Equal(t, ImplantMethodBrowse, m)

	m, err = ParseImplantMethod("recommended")
	require.NoError(t, err)
	assert.Equal(t, ImplantMethodRecommended, m)

	_, err = ParseImplantMethod("random")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
}
