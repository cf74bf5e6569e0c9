package providers

import (
	"context"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
)

// PaymentProvider collects the deposit for a booking
type PaymentProvider interface {
	ChargeDeposit(ctx context.Context, booking *entities.BookingRecord) (*entities.Receipt, error)
}
