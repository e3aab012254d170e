// Package assess holds adapters for the external risk-assessment
// collaborator. The real integration is owned by another team; the static
// adapter gives deterministic, repeatable surcharges for development.
package assess

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/shopspring/decimal"

	"github.com/insurly/autoquote/internal/core"
)

// StaticAssessor derives a small deterministic surcharge from the vehicle
// VIN. It implements core.RiskAssessor.
type StaticAssessor struct{}

func NewStaticAssessor() *StaticAssessor {
	return &StaticAssessor{}
}

// Assess returns a surcharge multiplier in [1.00, 1.05] based on a hash of
// the VIN. This allows repeatable test scenarios.
func (a *StaticAssessor) Assess(_ context.Context, req *core.QuoteRequest) (core.RiskAssessment, error) {
	h := sha256.Sum256([]byte(req.Vehicle.VIN))
	num := binary.BigEndian.Uint32(h[:4])
	bps := int64(num % 501) // range [0, 500] basis points

	return core.RiskAssessment{
		Surcharge: decimal.NewFromInt(1).Add(decimal.New(bps, -4)),
		Reference: "static-" + req.Vehicle.VIN,
	}, nil
}

var _ core.RiskAssessor = (*StaticAssessor)(nil)
