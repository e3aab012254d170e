package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// RiskAssessment is the fixed response contract of an external risk or
// credit-check collaborator. Surcharge is a multiplier on the base premium;
// 1.0 is neutral.
type RiskAssessment struct {
	Surcharge decimal.Decimal `json:"surcharge"`
	Reference string          `json:"reference"`
}

// RiskAssessor is an optional external collaborator, invoked synchronously.
// A failing assessor must surface as ErrRiskAssessment rather than silently
// degrade the premium calculation.
type RiskAssessor interface {
	Assess(ctx context.Context, req *QuoteRequest) (RiskAssessment, error)
}
