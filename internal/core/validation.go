package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VINs are 17 characters from the standard alphabet, which excludes I, O
// and Q to avoid confusion with 1 and 0.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// ValidationConfig carries the tunable bounds for request validation.
type ValidationConfig struct {
	MaxVehicleAge int
	MinDriverAge  int
	MaxDriverAge  int
	MinCoverage   decimal.Decimal
	MaxCoverage   decimal.Decimal
}

func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxVehicleAge: 20,
		MinDriverAge:  18,
		MaxDriverAge:  85,
		MinCoverage:   decimal.NewFromInt(25000),
		MaxCoverage:   decimal.NewFromInt(1000000),
	}
}

// ValidationEngine rejects structurally or semantically invalid quote
// requests before any pricing happens. Validation is pure and stops at the
// first violation in a fixed order.
type ValidationEngine struct {
	cfg   ValidationConfig
	clock func() time.Time
}

func NewValidationEngine(cfg ValidationConfig) *ValidationEngine {
	return &ValidationEngine{cfg: cfg, clock: time.Now}
}

func (v *ValidationEngine) Validate(req *QuoteRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrValidation)
	}
	if req.Vehicle == nil {
		return fmt.Errorf("%w: vehicle is required", ErrValidation)
	}
	if len(req.Drivers) == 0 {
		return fmt.Errorf("%w: at least one driver is required", ErrValidation)
	}
	if req.CoverageAmount == nil {
		return fmt.Errorf("%w: coverage amount is required", ErrValidation)
	}
	if req.Deductible == nil {
		return fmt.Errorf("%w: deductible is required", ErrValidation)
	}

	now := v.clock()
	if err := v.validateVehicle(req.Vehicle, now); err != nil {
		return err
	}
	for i, d := range req.Drivers {
		if err := v.validateDriver(d, i, now); err != nil {
			return err
		}
	}

	cov := *req.CoverageAmount
	if cov.Sign() <= 0 {
		return fmt.Errorf("%w: coverage amount must be positive", ErrValidation)
	}
	if cov.LessThan(v.cfg.MinCoverage) || cov.GreaterThan(v.cfg.MaxCoverage) {
		return fmt.Errorf("%w: coverage amount must be between %s and %s",
			ErrValidation, v.cfg.MinCoverage.StringFixed(2), v.cfg.MaxCoverage.StringFixed(2))
	}
	if req.Deductible.Sign() < 0 {
		return fmt.Errorf("%w: deductible must not be negative", ErrValidation)
	}
	return nil
}

func (v *ValidationEngine) validateVehicle(veh *Vehicle, now time.Time) error {
	if !vinPattern.MatchString(veh.VIN) {
		return fmt.Errorf("%w: vehicle VIN must be 17 characters (A-Z excluding I, O, Q, and digits)", ErrValidation)
	}
	if veh.Year == 0 {
		return fmt.Errorf("%w: vehicle year is required", ErrValidation)
	}
	if veh.Year > now.Year() {
		return fmt.Errorf("%w: vehicle year %d must not be in the future", ErrValidation, veh.Year)
	}
	if now.Year()-veh.Year > v.cfg.MaxVehicleAge {
		return fmt.Errorf("%w: vehicle must not be more than %d years old", ErrValidation, v.cfg.MaxVehicleAge)
	}
	if strings.TrimSpace(veh.Make) == "" {
		return fmt.Errorf("%w: vehicle make is required", ErrValidation)
	}
	if strings.TrimSpace(veh.Model) == "" {
		return fmt.Errorf("%w: vehicle model is required", ErrValidation)
	}
	if veh.CurrentValue.Sign() <= 0 {
		return fmt.Errorf("%w: vehicle current value must be positive", ErrValidation)
	}
	return nil
}

func (v *ValidationEngine) validateDriver(d Driver, idx int, now time.Time) error {
	if strings.TrimSpace(d.FirstName) == "" {
		return fmt.Errorf("%w: driver %d first name is required", ErrValidation, idx+1)
	}
	if strings.TrimSpace(d.LastName) == "" {
		return fmt.Errorf("%w: driver %d last name is required", ErrValidation, idx+1)
	}
	if d.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: driver %d date of birth is required", ErrValidation, idx+1)
	}
	age := d.Age(now)
	if age < v.cfg.MinDriverAge || age > v.cfg.MaxDriverAge {
		return fmt.Errorf("%w: driver %d age %d must be between %d and %d",
			ErrValidation, idx+1, age, v.cfg.MinDriverAge, v.cfg.MaxDriverAge)
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return fmt.Errorf("%w: driver %d license number is required", ErrValidation, idx+1)
	}
	if strings.TrimSpace(d.LicenseState) == "" {
		return fmt.Errorf("%w: driver %d license state is required", ErrValidation, idx+1)
	}
	return nil
}
