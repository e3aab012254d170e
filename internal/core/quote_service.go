package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

type quotationService struct {
	validator *ValidationEngine
	risk      *RiskCalculator
	discounts *DiscountCalculator
	builder   *QuoteBuilder
	quotes    QuoteRepo
	assessor  RiskAssessor // optional; nil means no external assessment
}

// NewQuotationService wires the quotation pipeline. The assessor may be nil
// when no external risk-assessment collaborator is configured.
func NewQuotationService(
	validator *ValidationEngine,
	risk *RiskCalculator,
	discounts *DiscountCalculator,
	builder *QuoteBuilder,
	quotes QuoteRepo,
	assessor RiskAssessor,
) QuotationService {
	return &quotationService{
		validator: validator,
		risk:      risk,
		discounts: discounts,
		builder:   builder,
		quotes:    quotes,
		assessor:  assessor,
	}
}

func (s *quotationService) GenerateQuote(ctx context.Context, req *QuoteRequest) (QuoteResponse, error) {
	// 1) validate, fail fast
	if err := s.validator.Validate(req); err != nil {
		return QuoteResponse{}, err
	}

	// 2) price
	base, err := s.basePremium(ctx, req)
	if err != nil {
		return QuoteResponse{}, err
	}

	// 3) discounts; totals and the applied list are two views of the same
	// computation and must agree
	calc := PremiumCalculation{
		BasePremium:      base,
		TotalDiscount:    s.discounts.TotalDiscount(req, base),
		AppliedDiscounts: s.discounts.AppliedDiscounts(req),
	}
	calc.FinalPremium = calc.BasePremium.Sub(calc.TotalDiscount)
	calc.MonthlyPremium = calc.FinalPremium.Div(monthsPerYear).Round(2)

	// 4) build + persist
	quote := s.builder.Build(req, calc)
	saved, err := s.quotes.Save(ctx, quote)
	if err != nil {
		return QuoteResponse{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return toResponse(saved), nil
}

func (s *quotationService) CalculatePremium(ctx context.Context, req *QuoteRequest) (decimal.Decimal, error) {
	if err := s.validator.Validate(req); err != nil {
		return decimal.Zero, err
	}
	return s.basePremium(ctx, req)
}

func (s *quotationService) GetQuoteByID(ctx context.Context, id string) (QuoteResponse, error) {
	if strings.TrimSpace(id) == "" {
		return QuoteResponse{}, fmt.Errorf("%w: quote id is required", ErrValidation)
	}

	quote, err := s.quotes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return QuoteResponse{}, fmt.Errorf("%w: %q", ErrQuoteNotFound, id)
		}
		return QuoteResponse{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return toResponse(quote), nil
}

// basePremium runs the risk calculator and, when an external assessor is
// wired in, applies its surcharge. An assessor failure propagates; it never
// silently degrades the premium.
func (s *quotationService) basePremium(ctx context.Context, req *QuoteRequest) (decimal.Decimal, error) {
	base := s.risk.CalculateBasePremium(req)
	if s.assessor == nil {
		return base, nil
	}

	assessment, err := s.assessor.Assess(ctx, req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrRiskAssessment, err)
	}
	return base.Mul(assessment.Surcharge).Round(2), nil
}

// toResponse maps the persisted record to the caller-facing view. Driver
// PII never crosses this boundary; a nil stored discount list normalizes to
// an empty one.
func toResponse(q Quote) QuoteResponse {
	discounts := q.DiscountsApplied
	if discounts == nil {
		discounts = []string{}
	}
	return QuoteResponse{
		QuoteID:          q.ID,
		Premium:          q.Premium,
		MonthlyPremium:   q.MonthlyPremium,
		CoverageAmount:   q.CoverageAmount,
		Deductible:       q.Deductible,
		ValidUntil:       q.ValidUntil,
		DiscountsApplied: discounts,
	}
}
