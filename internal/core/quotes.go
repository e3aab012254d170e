package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteRequest is the input to the quotation pipeline. Optional fields are
// pointers so that "absent" is distinguishable from a zero value; the
// ValidationEngine rejects requests before any of them are dereferenced.
type QuoteRequest struct {
	Vehicle        *Vehicle         `json:"vehicle"`
	Drivers        []Driver         `json:"drivers"`
	CoverageAmount *decimal.Decimal `json:"coverageAmount"`
	Deductible     *decimal.Decimal `json:"deductible"`
}

type Vehicle struct {
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	VIN          string          `json:"vin"`
	CurrentValue decimal.Decimal `json:"currentValue"`
}

type Driver struct {
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	LicenseNumber string    `json:"licenseNumber"`
	LicenseState  string    `json:"licenseState"`

	// YearsExperience is nullable; unknown experience is priced at the
	// neutral (non-discounted) baseline.
	YearsExperience *int `json:"yearsExperience,omitempty"`

	// Discount flags are three-state: true, false, or unknown (nil).
	// Unknown never earns a discount.
	SafeDriver  *bool `json:"safeDriver,omitempty"`
	MultiPolicy *bool `json:"multiPolicy,omitempty"`
}

// PrimaryDriver returns the driver whose name and license are denormalized
// onto the persisted quote. By convention this is the first driver in the
// request's list; callers must not re-derive it by indexing.
func PrimaryDriver(req *QuoteRequest) Driver {
	return req.Drivers[0]
}

// Age is the driver's age in whole years at the given date.
func (d Driver) Age(at time.Time) int {
	years := at.Year() - d.DateOfBirth.Year()
	anniversary := d.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

// PremiumCalculation carries the priced result of a request through the
// pipeline. AppliedDiscounts is a construction-time snapshot, never nil.
type PremiumCalculation struct {
	BasePremium      decimal.Decimal
	TotalDiscount    decimal.Decimal
	FinalPremium     decimal.Decimal
	MonthlyPremium   decimal.Decimal
	AppliedDiscounts []string
}

// Quote is the persisted record. Immutable once saved; financial fields are
// never updated in place.
type Quote struct {
	ID             string          `json:"id"`
	Premium        decimal.Decimal `json:"premium"`
	MonthlyPremium decimal.Decimal `json:"monthly_premium"`
	CoverageAmount decimal.Decimal `json:"coverage_amount"`
	Deductible     decimal.Decimal `json:"deductible"`
	ValidUntil     time.Time       `json:"valid_until"`
	CreatedAt      time.Time       `json:"created_at"`

	VehicleMake         string          `json:"vehicle_make"`
	VehicleModel        string          `json:"vehicle_model"`
	VehicleYear         int             `json:"vehicle_year"`
	VehicleVIN          string          `json:"vehicle_vin"`
	VehicleCurrentValue decimal.Decimal `json:"vehicle_current_value"`

	PrimaryDriverName    string `json:"primary_driver_name"`
	PrimaryDriverLicense string `json:"primary_driver_license"`

	DiscountsApplied []string `json:"discounts_applied"`
}

// QuoteResponse is the caller-facing view of a quote. It never carries
// driver PII; field names follow the existing API contract.
type QuoteResponse struct {
	QuoteID          string          `json:"quoteId"`
	Premium          decimal.Decimal `json:"premium"`
	MonthlyPremium   decimal.Decimal `json:"monthlyPremium"`
	CoverageAmount   decimal.Decimal `json:"coverageAmount"`
	Deductible       decimal.Decimal `json:"deductible"`
	ValidUntil       time.Time       `json:"validUntil"`
	DiscountsApplied []string        `json:"discountsApplied"`
}

// QuoteRepo is the record store. Save and FindByID are atomic per record;
// callers own retry policy for transient failures.
type QuoteRepo interface {
	Save(ctx context.Context, q Quote) (Quote, error)
	FindByID(ctx context.Context, id string) (Quote, error)
	// DeleteExpired removes quotes whose validity ended before the cutoff
	// and reports how many were removed. Used by the retention worker.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

// QuotationService orchestrates the quotation pipeline.
type QuotationService interface {
	GenerateQuote(ctx context.Context, req *QuoteRequest) (QuoteResponse, error)
	CalculatePremium(ctx context.Context, req *QuoteRequest) (decimal.Decimal, error)
	GetQuoteByID(ctx context.Context, id string) (QuoteResponse, error)
}

var (
	ErrQuoteNotFound = fmt.Errorf("%w: quote not found", ErrNotFound)
)
