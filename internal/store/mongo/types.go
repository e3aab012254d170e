package mongo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insurly/autoquote/internal/core"
)

const (
	ColQuotes = "quotes"
)

// QuoteDoc is the stored shape of a quote. Money fields are stored as
// fixed-point strings so no precision is lost in BSON.
type QuoteDoc struct {
	ID             string    `bson:"_id"`
	Premium        string    `bson:"premium"`
	MonthlyPremium string    `bson:"monthly_premium"`
	CoverageAmount string    `bson:"coverage_amount"`
	Deductible     string    `bson:"deductible"`
	ValidUntil     time.Time `bson:"valid_until"`
	CreatedAt      time.Time `bson:"created_at"`

	VehicleMake         string `bson:"vehicle_make"`
	VehicleModel        string `bson:"vehicle_model"`
	VehicleYear         int    `bson:"vehicle_year"`
	VehicleVIN          string `bson:"vehicle_vin"`
	VehicleCurrentValue string `bson:"vehicle_current_value"`

	PrimaryDriverName    string `bson:"primary_driver_name"`
	PrimaryDriverLicense string `bson:"primary_driver_license"`

	DiscountsApplied []string `bson:"discounts_applied"`
}

func toQuoteDoc(q core.Quote) QuoteDoc {
	return QuoteDoc{
		ID:             q.ID,
		Premium:        q.Premium.StringFixed(2),
		MonthlyPremium: q.MonthlyPremium.StringFixed(2),
		CoverageAmount: q.CoverageAmount.StringFixed(2),
		Deductible:     q.Deductible.StringFixed(2),
		ValidUntil:     q.ValidUntil,
		CreatedAt:      q.CreatedAt,

		VehicleMake:         q.VehicleMake,
		VehicleModel:        q.VehicleModel,
		VehicleYear:         q.VehicleYear,
		VehicleVIN:          q.VehicleVIN,
		VehicleCurrentValue: q.VehicleCurrentValue.StringFixed(2),

		PrimaryDriverName:    q.PrimaryDriverName,
		PrimaryDriverLicense: q.PrimaryDriverLicense,

		DiscountsApplied: q.DiscountsApplied,
	}
}

func fromQuoteDoc(d QuoteDoc) (core.Quote, error) {
	premium, err := decimal.NewFromString(d.Premium)
	if err != nil {
		return core.Quote{}, err
	}
	monthly, err := decimal.NewFromString(d.MonthlyPremium)
	if err != nil {
		return core.Quote{}, err
	}
	coverage, err := decimal.NewFromString(d.CoverageAmount)
	if err != nil {
		return core.Quote{}, err
	}
	deductible, err := decimal.NewFromString(d.Deductible)
	if err != nil {
		return core.Quote{}, err
	}
	value, err := decimal.NewFromString(d.VehicleCurrentValue)
	if err != nil {
		return core.Quote{}, err
	}

	return core.Quote{
		ID:             d.ID,
		Premium:        premium,
		MonthlyPremium: monthly,
		CoverageAmount: coverage,
		Deductible:     deductible,
		ValidUntil:     d.ValidUntil,
		CreatedAt:      d.CreatedAt,

		VehicleMake:         d.VehicleMake,
		VehicleModel:        d.VehicleModel,
		VehicleYear:         d.VehicleYear,
		VehicleVIN:          d.VehicleVIN,
		VehicleCurrentValue: value,

		PrimaryDriverName:    d.PrimaryDriverName,
		PrimaryDriverLicense: d.PrimaryDriverLicense,

		DiscountsApplied: d.DiscountsApplied,
	}, nil
}
