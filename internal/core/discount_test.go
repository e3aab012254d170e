package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCalculator_NoFlagsNoDiscount(t *testing.T) {
	dc := NewDiscountCalculator()
	req := validRequest()

	total := dc.TotalDiscount(req, dec("400.00"))
	assert.True(t, total.IsZero(), "got %s", total)
	assert.Empty(t, dc.AppliedDiscounts(req))
	assert.NotNil(t, dc.AppliedDiscounts(req))
}

func TestDiscountCalculator_UnknownFlagsEarnNothing(t *testing.T) {
	dc := NewDiscountCalculator()

	req := validRequest()
	req.Drivers[0].SafeDriver = nil
	req.Drivers[0].MultiPolicy = nil

	assert.True(t, dc.TotalDiscount(req, dec("400.00")).IsZero())
	assert.Empty(t, dc.AppliedDiscounts(req))
}

func TestDiscountCalculator_FalseFlagsEarnNothing(t *testing.T) {
	dc := NewDiscountCalculator()

	req := validRequest()
	req.Drivers[0].SafeDriver = boolPtr(false)
	req.Drivers[0].MultiPolicy = boolPtr(false)

	assert.True(t, dc.TotalDiscount(req, dec("400.00")).IsZero())
	assert.Empty(t, dc.AppliedDiscounts(req))
}

func TestDiscountCalculator_SafeDriver(t *testing.T) {
	dc := NewDiscountCalculator()

	req := validRequest()
	req.Drivers[0].SafeDriver = boolPtr(true)

	total := dc.TotalDiscount(req, dec("400.00"))
	assert.True(t, dec("60.00").Equal(total), "got %s", total)
	assert.Equal(t, []string{SafeDriverDiscountDesc}, dc.AppliedDiscounts(req))
}

func TestDiscountCalculator_MultiPolicy(t *testing.T) {
	dc := NewDiscountCalculator()

	req := validRequest()
	req.Drivers[0].MultiPolicy = boolPtr(true)

	total := dc.TotalDiscount(req, dec("400.00"))
	assert.True(t, dec("40.00").Equal(total), "got %s", total)
	assert.Equal(t, []string{MultiPolicyDiscountDesc}, dc.AppliedDiscounts(req))
}

// Both discounts together sum to exactly the 25% cap; the amount equals the
// cap and both descriptions are reported.
func TestDiscountCalculator_BothDiscountsHitCapExactly(t *testing.T) {
	dc := NewDiscountCalculator()

	req := validRequest()
	req.Drivers[0].SafeDriver = boolPtr(true)
	req.Drivers[0].MultiPolicy = boolPtr(true)

	base := dec("400.00")
	total := dc.TotalDiscount(req, base)
	assert.True(t, dec("100.00").Equal(total), "got %s", total)
	assert.Equal(t,
		[]string{SafeDriverDiscountDesc, MultiPolicyDiscountDesc},
		dc.AppliedDiscounts(req))
}

func TestDiscountCalculator_CapInvariant(t *testing.T) {
	dc := NewDiscountCalculator()
	base := dec("363.38")
	cap := base.Mul(dec("0.25"))

	combos := []struct {
		name        string
		safe, multi *bool
	}{
		{"none", nil, nil},
		{"safe only", boolPtr(true), nil},
		{"multi only", nil, boolPtr(true)},
		{"both", boolPtr(true), boolPtr(true)},
		{"both false", boolPtr(false), boolPtr(false)},
	}

	for _, c := range combos {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			req.Drivers[0].SafeDriver = c.safe
			req.Drivers[0].MultiPolicy = c.multi

			total := dc.TotalDiscount(req, base)
			assert.True(t, total.LessThanOrEqual(cap.Round(2)),
				"discount %s exceeds cap %s", total, cap)
			assert.False(t, total.IsNegative())
		})
	}
}

// The amount and the description list are two views of one computation:
// non-zero amount iff non-empty list.
func TestDiscountCalculator_ViewsStayConsistent(t *testing.T) {
	dc := NewDiscountCalculator()
	base := dec("500.00")

	for _, safe := range []*bool{nil, boolPtr(false), boolPtr(true)} {
		for _, multi := range []*bool{nil, boolPtr(false), boolPtr(true)} {
			req := validRequest()
			req.Drivers[0].SafeDriver = safe
			req.Drivers[0].MultiPolicy = multi

			total := dc.TotalDiscount(req, base)
			applied := dc.AppliedDiscounts(req)
			assert.Equal(t, !total.IsZero(), len(applied) > 0,
				"amount %s inconsistent with list %v", total, applied)
		}
	}
}

// Discount types are a set over the whole driver list: two safe drivers
// earn the 15% once, and a flag on any driver counts.
func TestDiscountCalculator_DeduplicatesAcrossDrivers(t *testing.T) {
	dc := NewDiscountCalculator()

	first := validDriver()
	first.SafeDriver = boolPtr(true)
	second := validDriver()
	second.SafeDriver = boolPtr(true)
	second.MultiPolicy = boolPtr(true)

	req := validRequest()
	req.Drivers = []Driver{first, second}

	total := dc.TotalDiscount(req, dec("400.00"))
	assert.True(t, dec("100.00").Equal(total), "got %s", total)
	assert.Equal(t,
		[]string{SafeDriverDiscountDesc, MultiPolicyDiscountDesc},
		dc.AppliedDiscounts(req))
}

func TestDiscountCalculator_TwoDecimalPrecision(t *testing.T) {
	dc := NewDiscountCalculator()

	req := validRequest()
	req.Drivers[0].SafeDriver = boolPtr(true)

	// 363.38 * 0.15 = 54.507 -> 54.51
	total := dc.TotalDiscount(req, dec("363.38"))
	assert.True(t, dec("54.51").Equal(total), "got %s", total)
}
