package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// fixedNow keeps age and vehicle-age computations stable across test runs.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// validDriver is 38 years old at fixedNow with 15 years of experience and
// no discount flags set.
func validDriver() Driver {
	return Driver{
		FirstName:       "Ava",
		LastName:        "Nolan",
		DateOfBirth:     time.Date(1987, 3, 10, 0, 0, 0, 0, time.UTC),
		LicenseNumber:   "N0147852",
		LicenseState:    "CA",
		YearsExperience: intPtr(15),
	}
}

// validRequest matches the canonical pricing scenario: $25,000 vehicle,
// $100,000 coverage, $1,000 deductible, one mid-band driver.
func validRequest() *QuoteRequest {
	return &QuoteRequest{
		Vehicle: &Vehicle{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         fixedNow.Year() - 2,
			VIN:          "4T1BF1FK5HU123456",
			CurrentValue: dec("25000"),
		},
		Drivers:        []Driver{validDriver()},
		CoverageAmount: decPtr(dec("100000")),
		Deductible:     decPtr(dec("1000")),
	}
}

func newTestValidator() *ValidationEngine {
	v := NewValidationEngine(DefaultValidationConfig())
	v.clock = fixedClock
	return v
}

func newTestRiskCalculator() *RiskCalculator {
	rc := NewRiskCalculator(dec("500.00"))
	rc.clock = fixedClock
	return rc
}
