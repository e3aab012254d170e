package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insurly/autoquote/internal/core"
	"github.com/insurly/autoquote/internal/platform/config"
	"github.com/insurly/autoquote/internal/platform/logging"
	"github.com/insurly/autoquote/internal/store/mongo"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Connect to Mongo
	client, err := mongo.NewClient(cfg)
	if err != nil {
		log.Error("failed to connect to MongoDB", "err", err)
		return
	}
	defer client.Close(ctx)

	if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
		log.Error("failed to ensure indexes", "err", err)
		return
	}

	repo := mongo.NewQuoteRepo(client.DB, 5*time.Second)
	svc := core.NewQuotationService(
		core.NewValidationEngine(core.ValidationConfig{
			MaxVehicleAge: cfg.MaxVehicleAge,
			MinDriverAge:  cfg.MinDriverAge,
			MaxDriverAge:  cfg.MaxDriverAge,
			MinCoverage:   cfg.MinCoverage,
			MaxCoverage:   cfg.MaxCoverage,
		}),
		core.NewRiskCalculator(cfg.BasePremiumRate),
		core.NewDiscountCalculator(),
		core.NewQuoteBuilder(cfg.QuoteValidityDays),
		repo,
		nil,
	)

	log.Info("seeding demo quotes")
	seedQuotes(ctx, svc)
	log.Info("done seeding")
}

func seedQuotes(ctx context.Context, svc core.QuotationService) {
	yes := true
	exp15 := 15
	exp3 := 3

	requests := []*core.QuoteRequest{
		{
			Vehicle: &core.Vehicle{
				Make: "Toyota", Model: "Camry", Year: time.Now().Year() - 2,
				VIN:          "4T1BF1FK5HU123456",
				CurrentValue: decimal.NewFromInt(25000),
			},
			Drivers: []core.Driver{{
				FirstName: "Ava", LastName: "Nolan",
				DateOfBirth:   time.Date(1987, 4, 12, 0, 0, 0, 0, time.UTC),
				LicenseNumber: "N0147852", LicenseState: "CA",
				YearsExperience: &exp15, SafeDriver: &yes, MultiPolicy: &yes,
			}},
			CoverageAmount: decimalPtr(decimal.NewFromInt(100000)),
			Deductible:     decimalPtr(decimal.NewFromInt(1000)),
		},
		{
			Vehicle: &core.Vehicle{
				Make: "Honda", Model: "Civic", Year: time.Now().Year() - 6,
				VIN:          "2HGFC2F59KH567890",
				CurrentValue: decimal.NewFromInt(15500),
			},
			Drivers: []core.Driver{{
				FirstName: "Marcus", LastName: "Reid",
				DateOfBirth:   time.Date(2003, 9, 2, 0, 0, 0, 0, time.UTC),
				LicenseNumber: "R5521098", LicenseState: "TX",
				YearsExperience: &exp3,
			}},
			CoverageAmount: decimalPtr(decimal.NewFromInt(50000)),
			Deductible:     decimalPtr(decimal.NewFromInt(500)),
		},
	}

	for _, req := range requests {
		resp, err := svc.GenerateQuote(ctx, req)
		if err != nil {
			fmt.Printf("failed to seed quote for %s: %v\n", req.Vehicle.VIN, err)
		} else {
			fmt.Printf("seeded: %s premium=%s\n", resp.QuoteID, resp.Premium.StringFixed(2))
		}
	}
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
