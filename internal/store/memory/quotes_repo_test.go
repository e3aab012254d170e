package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insurly/autoquote/internal/core"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleQuote(id string) core.Quote {
	return core.Quote{
		ID:                   id,
		Premium:              decimal.RequireFromString("272.53"),
		MonthlyPremium:       decimal.RequireFromString("22.71"),
		CoverageAmount:       decimal.RequireFromString("100000.00"),
		Deductible:           decimal.RequireFromString("1000.00"),
		ValidUntil:           testNow.AddDate(0, 0, 30),
		CreatedAt:            testNow,
		VehicleMake:          "Toyota",
		VehicleModel:         "Camry",
		VehicleYear:          2023,
		VehicleVIN:           "4T1BF1FK5HU123456",
		VehicleCurrentValue:  decimal.RequireFromString("25000.00"),
		PrimaryDriverName:    "Ava Nolan",
		PrimaryDriverLicense: "N0147852",
		DiscountsApplied:     []string{core.SafeDriverDiscountDesc},
	}
}

func TestQuoteRepo_SaveAndFind(t *testing.T) {
	repo := NewQuoteRepo()
	ctx := context.Background()

	want := sampleQuote("q-1")
	saved, err := repo.Save(ctx, want)
	require.NoError(t, err)
	assert.Equal(t, want, saved)

	got, err := repo.FindByID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuoteRepo_DuplicateIDConflicts(t *testing.T) {
	repo := NewQuoteRepo()
	ctx := context.Background()

	_, err := repo.Save(ctx, sampleQuote("q-1"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, sampleQuote("q-1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestQuoteRepo_FindUnknown(t *testing.T) {
	repo := NewQuoteRepo()

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestQuoteRepo_DeleteExpired(t *testing.T) {
	repo := NewQuoteRepo()
	ctx := context.Background()

	expired := sampleQuote("old")
	expired.ValidUntil = testNow.AddDate(0, 0, -1)
	_, err := repo.Save(ctx, expired)
	require.NoError(t, err)

	current := sampleQuote("current")
	_, err = repo.Save(ctx, current)
	require.NoError(t, err)

	// a record expiring exactly at the cutoff is kept
	boundary := sampleQuote("boundary")
	boundary.ValidUntil = testNow
	_, err = repo.Save(ctx, boundary)
	require.NoError(t, err)

	removed, err := repo.DeleteExpired(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.FindByID(ctx, "current")
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, "boundary")
	assert.NoError(t, err)
}

func TestQuoteRepo_StoredRecordsAreIsolated(t *testing.T) {
	repo := NewQuoteRepo()
	ctx := context.Background()

	original := sampleQuote("q-1")
	_, err := repo.Save(ctx, original)
	require.NoError(t, err)

	// mutating the caller's slice must not reach the stored record
	original.DiscountsApplied[0] = "tampered"

	got, err := repo.FindByID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, core.SafeDriverDiscountDesc, got.DiscountsApplied[0])

	// and mutating a fetched copy must not affect later reads
	got.DiscountsApplied[0] = "tampered"
	again, err := repo.FindByID(ctx, "q-1")
	require.NoError(t, err)
	assert.Equal(t, core.SafeDriverDiscountDesc, again.DiscountsApplied[0])
}

func TestQuoteRepo_ConcurrentSaves(t *testing.T) {
	repo := NewQuoteRepo()
	ctx := context.Background()

	const n = 50
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			_, err := repo.Save(ctx, sampleQuote(fmt.Sprintf("q-%d", i)))
			errs <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	for i := 0; i < n; i++ {
		_, err := repo.FindByID(ctx, fmt.Sprintf("q-%d", i))
		assert.NoError(t, err)
	}
}
