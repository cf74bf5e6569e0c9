package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
)

// SimulatedAdapter approves every deposit without contacting a gateway.
type SimulatedAdapter struct {
	now func() time.Time
}

// NewSimulatedAdapter creates a simulated payment provider.
func NewSimulatedAdapter() providers.PaymentProvider {
	return &SimulatedAdapter{now: time.Now}
}

// ChargeDeposit returns a receipt for the booking's deposit.
func (a *SimulatedAdapter) ChargeDeposit(ctx context.Context, booking *entities.BookingRecord) (*entities.Receipt, error) {
	if booking == nil || booking.ID == "" {
		return nil, fmt.Errorf("booking is required")
	}
	if booking.Deposit <= 0 {
		return nil, fmt.Errorf("booking %s has no deposit to charge", booking.ID)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	return &entities.Receipt{
		ID:        id,
		BookingID: booking.ID,
		Amount:    booking.Deposit,
		Reference: "SIM-" + strings.ToUpper(id[:8]),
		PaidAt:    a.now(),
	}, nil
}
