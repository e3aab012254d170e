package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// referenceCoverage anchors the linear coverage factor: coverage equal to
// the reference contributes a neutral 1.0 multiplier.
var referenceCoverage = decimal.NewFromInt(100000)

// riskFactor is one named multiplicative adjustment to the base rate.
// Factors are independent; the base premium is the ordered fold of all of
// them over the configured base rate.
type riskFactor struct {
	name  string
	apply func(req *QuoteRequest, now time.Time) decimal.Decimal
}

// RiskCalculator converts a validated request into a base premium. It is a
// pure function of the request, the configured base rate, and the clock.
type RiskCalculator struct {
	baseRate decimal.Decimal
	factors  []riskFactor
	clock    func() time.Time
}

func NewRiskCalculator(baseRate decimal.Decimal) *RiskCalculator {
	return &RiskCalculator{
		baseRate: baseRate,
		factors: []riskFactor{
			{name: "coverage", apply: factorCoverage},
			{name: "deductible", apply: factorDeductible},
			{name: "vehicle_age", apply: factorVehicleAge},
			{name: "drivers", apply: factorDrivers},
		},
		clock: time.Now,
	}
}

// CalculateBasePremium folds every risk factor over the base rate and
// rounds the result to cents. The request must already be validated.
func (rc *RiskCalculator) CalculateBasePremium(req *QuoteRequest) decimal.Decimal {
	now := rc.clock()
	premium := rc.baseRate
	for _, f := range rc.factors {
		premium = premium.Mul(f.apply(req, now))
	}
	return premium.Round(2)
}

// factorCoverage is linear in the coverage amount: doubling coverage
// doubles the factor.
func factorCoverage(req *QuoteRequest, _ time.Time) decimal.Decimal {
	return req.CoverageAmount.Div(referenceCoverage)
}

// factorDeductible is inverse to the deductible; a low deductible means
// higher insurer exposure.
func factorDeductible(req *QuoteRequest, _ time.Time) decimal.Decimal {
	d := *req.Deductible
	switch {
	case d.GreaterThanOrEqual(decimal.NewFromInt(2000)):
		return decimal.NewFromFloat(0.85)
	case d.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return decimal.NewFromFloat(0.95)
	case d.GreaterThanOrEqual(decimal.NewFromInt(500)):
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromFloat(1.10)
	}
}

func factorVehicleAge(req *QuoteRequest, now time.Time) decimal.Decimal {
	age := now.Year() - req.Vehicle.Year
	switch {
	case age <= 3:
		return decimal.NewFromFloat(0.90)
	case age <= 7:
		return decimal.NewFromInt(1)
	case age <= 12:
		return decimal.NewFromFloat(1.15)
	default:
		return decimal.NewFromFloat(1.30)
	}
}

// factorDrivers aggregates per-driver risk. The highest-risk driver sets
// the exposure: the aggregate is the maximum of the individual factors, so
// adding a driver can never lower the premium.
func factorDrivers(req *QuoteRequest, now time.Time) decimal.Decimal {
	agg := decimal.Zero
	for _, d := range req.Drivers {
		f := driverFactor(d, now)
		if f.GreaterThan(agg) {
			agg = f
		}
	}
	return agg
}

func driverFactor(d Driver, now time.Time) decimal.Decimal {
	return driverAgeFactor(d.Age(now)).Mul(experienceAdjustment(d.YearsExperience))
}

func driverAgeFactor(age int) decimal.Decimal {
	switch {
	case age < 25:
		return decimal.NewFromFloat(1.50)
	case age <= 65:
		return decimal.NewFromInt(1)
	default:
		return decimal.NewFromFloat(1.20)
	}
}

// experienceAdjustment discounts a driver's factor by 1% per licensed year
// up to 15 years; beyond that more experience buys nothing. Unknown
// experience is the neutral baseline, not an error.
func experienceAdjustment(years *int) decimal.Decimal {
	if years == nil {
		return decimal.NewFromInt(1)
	}
	y := *years
	if y < 0 {
		y = 0
	}
	if y > 15 {
		y = 15
	}
	return decimal.NewFromInt(1).Sub(decimal.New(int64(y), -2))
}
