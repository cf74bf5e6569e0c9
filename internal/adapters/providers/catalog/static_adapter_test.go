package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

func TestStaticAdapter_EveryProcedureCategoryHasAllTiers(t *testing.T) {
	adapter := NewStaticAdapter()
	ctx := context.Background()

	procedures, err := adapter.FetchProcedures(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, procedures)

	for _, p := range procedures {
		implants, err := adapter.FetchImplants(ctx, p.Category)
		require.NoError(t, err)

		tiers := map[entities.ImplantTier]bool{}
		for _, i := range implants {
			tiers[i.Tier] = true
			assert.Equal(t, p.Category, i.Category)
		}
		assert.True(t, tiers[entities.ImplantTierPremium], p.Category)
		assert.True(t, tiers[entities.ImplantTierStandard], p.Category)
		assert.True(t, tiers[entities.ImplantTierBasic], p.Category)
	}
}

func TestStaticAdapter_UnknownCategoryIsEmpty(t *testing.T) {
	implants, err := NewStaticAdapter().FetchImplants(context.Background(), "dental")
	require.NoError(t, err)
	assert.Empty(t, implants)
}

func TestStaticAdapter_HospitalsHaveValidZones(t *testing.T) {
	hospitals, err := NewStaticAdapter().FetchHospitals(context.Background())
	require.NoError(t, err)
	for _, h := range hospitals {
		assert.True(t, h.Zone.Valid(), h.ID)
	}
}

func TestStaticAdapter_ReturnsCopies(t *testing.T) {
	adapter := NewStaticAdapter()
	ctx := context.Background()

	first, err := adapter.FetchHospitals(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"
	first[0].Facilities[0] = "mutated"

	second, err := adapter.FetchHospitals(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
	assert.NotEqual(t, "mutated", second[0].Facilities[0])
}
