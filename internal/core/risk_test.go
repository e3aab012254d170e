package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskCalculator_CanonicalScenario(t *testing.T) {
	rc := newTestRiskCalculator()

	// 500.00 base * 1.00 coverage * 0.95 deductible * 0.90 vehicle age
	// * (1.00 age band * 0.85 experience) = 363.375 -> 363.38
	got := rc.CalculateBasePremium(validRequest())
	assert.True(t, dec("363.38").Equal(got), "got %s", got)
}

func TestRiskCalculator_Deterministic(t *testing.T) {
	rc := newTestRiskCalculator()
	req := validRequest()

	first := rc.CalculateBasePremium(req)
	second := rc.CalculateBasePremium(req)
	assert.True(t, first.Equal(second))
}

func TestRiskCalculator_AlwaysPositive(t *testing.T) {
	rc := newTestRiskCalculator()

	req := validRequest()
	req.CoverageAmount = decPtr(dec("25000"))
	req.Deductible = decPtr(dec("10000"))
	req.Drivers[0].YearsExperience = intPtr(40)

	got := rc.CalculateBasePremium(req)
	assert.True(t, got.IsPositive(), "got %s", got)
}

func TestRiskCalculator_CoverageFactorIsLinear(t *testing.T) {
	rc := newTestRiskCalculator()

	// deductible 500 keeps every other factor at an exact multiple so the
	// rounded results double exactly
	req := validRequest()
	req.Deductible = decPtr(dec("500"))
	base := rc.CalculateBasePremium(req)

	req.CoverageAmount = decPtr(dec("200000"))
	doubled := rc.CalculateBasePremium(req)

	assert.True(t, base.Mul(decimal.NewFromInt(2)).Equal(doubled),
		"expected %s, got %s", base.Mul(decimal.NewFromInt(2)), doubled)
}

func TestRiskCalculator_LowerDeductibleCostsMore(t *testing.T) {
	rc := newTestRiskCalculator()

	req := validRequest()
	req.Deductible = decPtr(dec("250"))
	low := rc.CalculateBasePremium(req)

	req.Deductible = decPtr(dec("2000"))
	high := rc.CalculateBasePremium(req)

	assert.True(t, low.GreaterThan(high),
		"low deductible %s should exceed high deductible %s", low, high)
}

func TestRiskCalculator_OlderVehicleCostsMore(t *testing.T) {
	rc := newTestRiskCalculator()

	req := validRequest()
	req.Vehicle.Year = fixedNow.Year() - 1
	newer := rc.CalculateBasePremium(req)

	req.Vehicle.Year = fixedNow.Year() - 15
	older := rc.CalculateBasePremium(req)

	assert.True(t, older.GreaterThan(newer),
		"older vehicle %s should exceed newer %s", older, newer)
}

func TestRiskCalculator_DriverAgeBands(t *testing.T) {
	rc := newTestRiskCalculator()

	price := func(dobYearsAgo int) decimal.Decimal {
		req := validRequest()
		req.Drivers[0].DateOfBirth = fixedNow.AddDate(-dobYearsAgo, 0, 0)
		req.Drivers[0].YearsExperience = nil
		return rc.CalculateBasePremium(req)
	}

	young := price(21)
	middle := price(40)
	senior := price(70)

	assert.True(t, young.GreaterThan(middle), "young %s vs middle %s", young, middle)
	assert.True(t, senior.GreaterThan(middle), "senior %s vs middle %s", senior, middle)
	assert.True(t, young.GreaterThan(senior), "young %s vs senior %s", young, senior)
}

func TestRiskCalculator_ExperienceReducesPremium(t *testing.T) {
	rc := newTestRiskCalculator()

	req := validRequest()
	req.Drivers[0].YearsExperience = nil
	neutral := rc.CalculateBasePremium(req)

	req.Drivers[0].YearsExperience = intPtr(10)
	experienced := rc.CalculateBasePremium(req)

	assert.True(t, experienced.LessThan(neutral),
		"experienced %s should be below neutral %s", experienced, neutral)
}

func TestRiskCalculator_ExperienceEffectDiminishes(t *testing.T) {
	rc := newTestRiskCalculator()

	price := func(years int) decimal.Decimal {
		req := validRequest()
		req.Drivers[0].YearsExperience = intPtr(years)
		return rc.CalculateBasePremium(req)
	}

	// The discount flattens out at 15 years; beyond that nothing changes.
	assert.True(t, price(15).Equal(price(30)))
	assert.True(t, price(5).GreaterThan(price(15)))
}

func TestRiskCalculator_UnknownExperienceIsNeutral(t *testing.T) {
	rc := newTestRiskCalculator()

	req := validRequest()
	req.Drivers[0].YearsExperience = nil
	unknown := rc.CalculateBasePremium(req)

	req.Drivers[0].YearsExperience = intPtr(0)
	zero := rc.CalculateBasePremium(req)

	assert.True(t, unknown.Equal(zero))
}

func TestRiskCalculator_HighestRiskDriverDominates(t *testing.T) {
	rc := newTestRiskCalculator()

	highRisk := validDriver()
	highRisk.DateOfBirth = fixedNow.AddDate(-21, 0, 0)
	highRisk.YearsExperience = intPtr(1)

	lowRisk := validDriver()

	single := validRequest()
	single.Drivers = []Driver{highRisk}
	alone := rc.CalculateBasePremium(single)

	both := validRequest()
	both.Drivers = []Driver{lowRisk, highRisk}
	together := rc.CalculateBasePremium(both)

	require.True(t, together.GreaterThanOrEqual(alone),
		"adding a driver must never lower the premium: %s vs %s", together, alone)

	lowOnly := validRequest()
	lowOnly.Drivers = []Driver{lowRisk}
	low := rc.CalculateBasePremium(lowOnly)

	assert.True(t, together.GreaterThanOrEqual(low),
		"pair %s must cost at least the low-risk driver alone %s", together, low)
}

func TestRiskCalculator_AddingDriverNeverDecreases(t *testing.T) {
	rc := newTestRiskCalculator()

	req := validRequest()
	base := rc.CalculateBasePremium(req)

	extra := validDriver()
	extra.YearsExperience = intPtr(15)
	req.Drivers = append(req.Drivers, extra)

	withExtra := rc.CalculateBasePremium(req)
	assert.True(t, withExtra.GreaterThanOrEqual(base))
}
