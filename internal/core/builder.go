package core

import (
	"time"

	"github.com/insurly/autoquote/internal/platform/ids"
)

// QuoteBuilder assembles the persistable record from a validated request
// and its priced calculation. Everything is deterministic except the
// generated identifier and the creation timestamp.
type QuoteBuilder struct {
	validityDays int
	clock        func() time.Time
}

func NewQuoteBuilder(validityDays int) *QuoteBuilder {
	return &QuoteBuilder{
		validityDays: validityDays,
		clock:        time.Now,
	}
}

func (b *QuoteBuilder) Build(req *QuoteRequest, calc PremiumCalculation) Quote {
	now := b.clock()
	primary := PrimaryDriver(req)

	return Quote{
		ID:             ids.New(),
		Premium:        calc.FinalPremium.Round(2),
		MonthlyPremium: calc.MonthlyPremium.Round(2),
		CoverageAmount: req.CoverageAmount.Round(2),
		Deductible:     req.Deductible.Round(2),
		ValidUntil:     now.AddDate(0, 0, b.validityDays),
		CreatedAt:      now,

		VehicleMake:         req.Vehicle.Make,
		VehicleModel:        req.Vehicle.Model,
		VehicleYear:         req.Vehicle.Year,
		VehicleVIN:          req.Vehicle.VIN,
		VehicleCurrentValue: req.Vehicle.CurrentValue.Round(2),

		PrimaryDriverName:    primary.FirstName + " " + primary.LastName,
		PrimaryDriverLicense: primary.LicenseNumber,

		DiscountsApplied: copyDiscounts(calc.AppliedDiscounts),
	}
}

// copyDiscounts takes a construction-time snapshot; nil and empty inputs
// both come out as an empty, freshly allocated slice.
func copyDiscounts(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
