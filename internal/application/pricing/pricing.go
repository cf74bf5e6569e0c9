// Package pricing holds the single price computation shared by the facility
// preview, the quote endpoint and finalization.
package pricing

import (
	"math"

	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/pkg/config"
	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

// Fee policy defaults. Procedure and provider fees are flat and do not
// depend on the selected surgery or surgeon records.
const (
	DefaultProcedureFee int64   = 200000
	DefaultProviderFee  int64   = 50000
	DefaultDepositRate  float64 = 0.05
)

// Breakdown is the itemized result of a price computation
type Breakdown struct {
	ProcedureFee    int64 `json:"procedure_fee"`
	ProviderFee     int64 `json:"provider_fee"`
	ImplantCost     int64 `json:"implant_cost"`
	HospitalBase    int64 `json:"hospital_base"`
	ConsumablesCost int64 `json:"consumables_cost"`
	Total           int64 `json:"total"`
	Deposit         int64 `json:"deposit"`
}

// bpsScale is one whole rate expressed in basis points
const bpsScale int64 = 10000

// Calculator computes totals and deposits under a fixed fee policy
type Calculator struct {
	procedureFee int64
	providerFee  int64
	depositBps   int64
}

// NewCalculator creates a calculator from the pricing configuration
func NewCalculator(cfg config.PricingConfig) *Calculator {
	return &Calculator{
		procedureFee: cfg.ProcedureFee,
		providerFee:  cfg.ProviderFee,
		depositBps:   RateToBasisPoints(cfg.DepositRate),
	}
}

// DefaultCalculator returns a calculator with the default fee policy
func DefaultCalculator() *Calculator {
	return NewCalculator(config.PricingConfig{
		ProcedureFee: DefaultProcedureFee,
		ProviderFee:  DefaultProviderFee,
		DepositRate:  DefaultDepositRate,
	})
}

// Price computes the breakdown for an implant and hospital pair. A nil or
// deferred implant contributes nothing.
func (c *Calculator) Price(implant *entities.Implant, hospital *entities.Hospital) (Breakdown, error) {
	if hospital == nil {
		return Breakdown{}, apperrors.NewValidationError("hospital is required to compute a price")
	}

	if hospital.BasePrice < 0 || hospital.ConsumablesCost < 0 {
		return Breakdown{}, apperrors.NewValidationError("hospital prices must not be negative")
	}

	b := Breakdown{
		ProcedureFee:    c.procedureFee,
		ProviderFee:     c.providerFee,
		HospitalBase:    hospital.BasePrice,
		ConsumablesCost: hospital.ConsumablesCost,
	}
	if implant != nil && !implant.IsSurgeonChoice() {
		if implant.Cost < 0 {
			return Breakdown{}, apperrors.NewValidationError("implant cost must not be negative")
		}
		b.ImplantCost = implant.Cost
	}

	b.Total = b.ProcedureFee + b.ProviderFee + b.ImplantCost + b.HospitalBase + b.ConsumablesCost
	b.Deposit = Deposit(b.Total, c.depositBps)
	return b, nil
}

// Quote prices a booking context. Surgery and hospital must both be present.
func (c *Calculator) Quote(bc entities.BookingContext) (Breakdown, error) {
	if bc.Surgery == nil {
		return Breakdown{}, apperrors.NewValidationError("surgery is required to compute a price")
	}
	return c.Price(bc.Implant, bc.Hospital)
}

// RateToBasisPoints converts a fractional rate such as 0.05 to basis points (500)
func RateToBasisPoints(rate float64) int64 {
	return int64(math.Round(rate * float64(bpsScale)))
}

// Deposit returns round(total * rateBps / 10000), rounding half away from zero.
// The total is split so the arithmetic stays exact in int64.
func Deposit(total, rateBps int64) int64 {
	negative := total < 0
	if negative {
		total = -total
	}
	whole, rem := total/bpsScale, total%bpsScale
	deposit := whole*rateBps + (rem*rateBps+bpsScale/2)/bpsScale
	if negative {
		return -deposit
	}
	return deposit
}
