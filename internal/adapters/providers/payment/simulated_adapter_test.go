package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

func TestSimulatedAdapter_ChargeDeposit(t *testing.T) {
	adapter := NewSimulatedAdapter()

	receipt, err := adapter.ChargeDeposit(context.Background(), &entities.BookingRecord{ID: "b-1", Deposit: 29750})

	require.NoError(t, err)
	assert.Equal(t, "b-1", receipt.BookingID)
	assert.Equal(t, int64(29750), receipt.Amount)
	assert.True(t, strings.HasPrefix(receipt.Reference, "SIM-"))
	assert.False(t, receipt.PaidAt.IsZero())
}

func TestSimulatedAdapter_RejectsMissingDeposit(t *testing.T) {
	adapter := NewSimulatedAdapter()

	_, err := adapter.ChargeDeposit(context.Background(), &entities.BookingRecord{ID: "b-1"})
	assert.Error(t, err)

	_, err = adapter.ChargeDeposit(context.Background(), nil)
	assert.Error(t, err)
}

func TestSimulatedAdapter_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulatedAdapter().ChargeDeposit(ctx, &entities.BookingRecord{ID: "b-1", Deposit: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
