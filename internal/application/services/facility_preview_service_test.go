package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/application/pricing"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

func TestFacilityPreview_GroupsByAscendingZone(t *testing.T) {
	svc := NewFacilityPreviewService(pricing.DefaultCalculator())
	hospitals := []entities.Hospital{
		{ID: "h-essential", Zone: entities.Zone(3), BasePrice: 80000, ConsumablesCost: 20000},
		{ID: "h-premium-a", Zone: entities.Zone(1), BasePrice: 250000, ConsumablesCost: 60000},
		{ID: "h-mid", Zone: entities.Zone(2), BasePrice: 150000, ConsumablesCost: 35000},
		{ID: "h-premium-b", Zone: entities.Zone(1), BasePrice: 220000, ConsumablesCost: 55000},
	}

	groups, err := svc.Preview(&entities.Implant{ID: "k1", Cost: 165000}, hospitals)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, entities.Zone(1), groups[0].Zone)
	assert.Equal(t, "premium", groups[0].Label)
	require.Len(t, groups[0].Hospitals, 2)
	assert.Equal(t, "h-premium-a", groups[0].Hospitals[0].Hospital.ID)
	assert.Equal(t, "h-premium-b", groups[0].Hospitals[1].Hospital.ID)
	assert.Equal(t, entities.Zone(2), groups[1].Zone)
	assert.Equal(t, entities.Zone(3), groups[2].Zone)
}

func TestFacilityPreview_PricesEachHospital(t *testing.T) {
	svc := NewFacilityPreviewService(pricing.DefaultCalculator())
	hospitals := []entities.Hospital{
		{ID: "h-mid", Zone: entities.Zone(2), BasePrice: 150000, ConsumablesCost: 30000},
	}

	groups, err := svc.Preview(&entities.Implant{ID: "k1", Cost: 165000}, hospitals)
	require.NoError(t, err)

	price := groups[0].Hospitals[0].Price
	assert.Equal(t, int64(200000+50000+165000+150000+30000), price.Total)
	assert.Equal(t, int64(29750), price.Deposit)
}

func TestFacilityPreview_DeferredImplantCostsNothing(t *testing.T) {
	svc := NewFacilityPreviewService(pricing.DefaultCalculator())
	hospitals := []entities.Hospital{{ID: "h", Zone: entities.Zone(3), BasePrice: 80000, ConsumablesCost: 20000}}

	groups, err := svc.Preview(entities.SurgeonChoiceImplant(), hospitals)
	require.NoError(t, err)
	assert.Equal(t, int64(0), groups[0].Hospitals[0].Price.ImplantCost)
	assert.Equal(t, int64(350000), groups[0].Hospitals[0].Price.Total)
}

func TestFacilityPreview_Empty(t *testing.T) {
	svc := NewFacilityPreviewService(pricing.DefaultCalculator())

	groups, err := svc.Preview(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
