package core

import "github.com/shopspring/decimal"

const (
	SafeDriverDiscountDesc  = "Safe Driver Discount - 15%"
	MultiPolicyDiscountDesc = "Multi-Policy Discount - 10%"
)

var (
	safeDriverPct  = decimal.NewFromFloat(0.15)
	multiPolicyPct = decimal.NewFromFloat(0.10)

	// Total discount never exceeds 25% of the base premium, no matter how
	// many discount types are earned.
	discountCapPct = decimal.NewFromFloat(0.25)
)

// DiscountCalculator computes eligible discounts from driver flags. A
// discount type is earned once if any driver in the list qualifies; flags
// left unknown (nil) never qualify.
type DiscountCalculator struct{}

func NewDiscountCalculator() *DiscountCalculator {
	return &DiscountCalculator{}
}

// TotalDiscount returns the capped discount amount against the given base
// premium, at cent precision.
func (dc *DiscountCalculator) TotalDiscount(req *QuoteRequest, basePremium decimal.Decimal) decimal.Decimal {
	pct := decimal.Zero
	if anyDriver(req, func(d Driver) *bool { return d.SafeDriver }) {
		pct = pct.Add(safeDriverPct)
	}
	if anyDriver(req, func(d Driver) *bool { return d.MultiPolicy }) {
		pct = pct.Add(multiPolicyPct)
	}
	if pct.GreaterThan(discountCapPct) {
		pct = discountCapPct
	}
	return basePremium.Mul(pct).Round(2)
}

// AppliedDiscounts lists the description of every earned discount type, in
// a fixed order. The cap affects only the dollar amount, never this list.
// The result is never nil.
func (dc *DiscountCalculator) AppliedDiscounts(req *QuoteRequest) []string {
	applied := []string{}
	if anyDriver(req, func(d Driver) *bool { return d.SafeDriver }) {
		applied = append(applied, SafeDriverDiscountDesc)
	}
	if anyDriver(req, func(d Driver) *bool { return d.MultiPolicy }) {
		applied = append(applied, MultiPolicyDiscountDesc)
	}
	return applied
}

func anyDriver(req *QuoteRequest, flag func(Driver) *bool) bool {
	for _, d := range req.Drivers {
		if f := flag(d); f != nil && *f {
			return true
		}
	}
	return false
}
